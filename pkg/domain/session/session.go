package session

import (
	"time"
)

// Session maps a WhatsApp sender to its assistant thread and recency
// timestamps. The store holds at most one row per user.
type Session struct {
	UserID          string    `gorm:"column:id;primaryKey" json:"id"`
	ThreadID        string    `gorm:"column:thread_id" json:"thread_id"`
	CreatedAt       time.Time `gorm:"column:created_date" json:"created_date"`
	LastInteraction time.Time `gorm:"column:last_interaction" json:"last_interaction"`
}

func (Session) TableName() string {
	return "sessions"
}

func NewSession(userID, threadID string, now time.Time) *Session {
	now = now.UTC()
	return &Session{
		UserID:          userID,
		ThreadID:        threadID,
		CreatedAt:       now,
		LastInteraction: now,
	}
}
