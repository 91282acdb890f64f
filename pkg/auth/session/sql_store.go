package session

import (
	"context"
	"errors"
	"time"

	"github.com/leaderturk/property-management/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLStore keeps sessions in the sessions table next to the application data.
type SQLStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (s *SQLStore) Save(ctx context.Context, sid string, rec Record) error {
	row := models.Session{
		SID:       sid,
		UserID:    rec.UserID,
		Expire:    rec.ExpiresAt.UTC(),
		CreatedAt: s.now(),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sid"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "expire"}),
		}).
		Create(&row).Error
}

func (s *SQLStore) Load(ctx context.Context, sid string) (Record, error) {
	var row models.Session
	err := s.db.WithContext(ctx).
		Where("sid = ? AND expire > ?", sid, s.now()).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return Record{UserID: row.UserID, ExpiresAt: row.Expire}, nil
}

func (s *SQLStore) Delete(ctx context.Context, sid string) error {
	return s.db.WithContext(ctx).Where("sid = ?", sid).Delete(&models.Session{}).Error
}

// Purge deletes expired rows and reports how many were removed.
func (s *SQLStore) Purge(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expire <= ?", s.now()).Delete(&models.Session{})
	return res.RowsAffected, res.Error
}
