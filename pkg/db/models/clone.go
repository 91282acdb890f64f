package models

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Clone returns a copy that shares no pointer fields with u.
func (u User) Clone() User {
	u.Username = clonePtr(u.Username)
	u.Password = clonePtr(u.Password)
	u.Email = clonePtr(u.Email)
	u.FirstName = clonePtr(u.FirstName)
	u.LastName = clonePtr(u.LastName)
	u.ProfileImageURL = clonePtr(u.ProfileImageURL)
	return u
}

func (b Building) Clone() Building {
	b.ManagerID = clonePtr(b.ManagerID)
	return b
}

func (f Flat) Clone() Flat {
	f.Block = clonePtr(f.Block)
	f.Size = clonePtr(f.Size)
	f.ResidentID = clonePtr(f.ResidentID)
	return f
}

func (r Resident) Clone() Resident {
	r.Email = clonePtr(r.Email)
	r.Phone = clonePtr(r.Phone)
	return r
}

func (p FeePayment) Clone() FeePayment {
	p.PaidAt = clonePtr(p.PaidAt)
	return p
}

func (m MaintenanceRequest) Clone() MaintenanceRequest {
	m.ResolvedAt = clonePtr(m.ResolvedAt)
	return m
}

func (c ContactRequest) Clone() ContactRequest {
	c.Phone = clonePtr(c.Phone)
	c.ServiceType = clonePtr(c.ServiceType)
	return c
}

func (p BlogPost) Clone() BlogPost {
	p.Excerpt = clonePtr(p.Excerpt)
	p.Category = clonePtr(p.Category)
	return p
}
