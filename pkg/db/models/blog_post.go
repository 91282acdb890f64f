package models

import (
	"time"

	"github.com/leaderturk/property-management/pkg/types"
	"github.com/leaderturk/property-management/pkg/validation"
)

// BlogPost is a page or article shown on the public site once published.
type BlogPost struct {
	ID        string    `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	Title     string    `gorm:"column:title;not null" json:"title"`
	Content   string    `gorm:"column:content;not null" json:"content"`
	Excerpt   *string   `gorm:"column:excerpt" json:"excerpt"`
	Category  *string   `gorm:"column:category" json:"category"`
	Published bool      `gorm:"column:published;not null;default:false;index" json:"published"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime:false" json:"createdAt"`
}

type BlogPostInput struct {
	Title     string  `json:"title" validate:"required,max=300"`
	Content   string  `json:"content" validate:"required"`
	Excerpt   *string `json:"excerpt" validate:"omitempty,max=1000"`
	Category  *string `json:"category" validate:"omitempty,max=100"`
	Published *bool   `json:"published"`
}

type BlogPostPatch struct {
	Title     types.Optional[string] `json:"title"`
	Content   types.Optional[string] `json:"content"`
	Excerpt   types.Nullable[string] `json:"excerpt"`
	Category  types.Nullable[string] `json:"category"`
	Published types.Optional[bool]   `json:"published"`
}

func (p BlogPostPatch) Validate() error {
	errs := validation.Errors{}
	validation.CheckOptional(errs, "title", p.Title, "required,max=300")
	validation.CheckOptional(errs, "content", p.Content, "required")
	validation.CheckNullable(errs, "excerpt", p.Excerpt, "max=1000")
	validation.CheckNullable(errs, "category", p.Category, "max=100")
	return errs.Err()
}

func NewBlogPost(id string, now time.Time, in BlogPostInput) BlogPost {
	bp := BlogPost{
		ID:        id,
		Title:     in.Title,
		Content:   in.Content,
		Excerpt:   in.Excerpt,
		Category:  in.Category,
		CreatedAt: now,
	}
	if in.Published != nil {
		bp.Published = *in.Published
	}
	return bp
}

func (p BlogPostPatch) Apply(bp *BlogPost) {
	p.Title.ApplyTo(&bp.Title)
	p.Content.ApplyTo(&bp.Content)
	p.Excerpt.ApplyTo(&bp.Excerpt)
	p.Category.ApplyTo(&bp.Category)
	p.Published.ApplyTo(&bp.Published)
}
