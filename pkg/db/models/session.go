package models

import "time"

// Session is a server-side login session persisted in SQL.
type Session struct {
	SID       string    `gorm:"column:sid;type:varchar(128);primaryKey"`
	UserID    string    `gorm:"column:user_id;not null"`
	Expire    time.Time `gorm:"column:expire;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime:false"`
}
