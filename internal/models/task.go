package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Task struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	Subject      string    `gorm:"not null" json:"subject"`
	Description  string    `json:"description"`
	DueDate      time.Time `gorm:"not null;index" json:"due_date"`
	IsCompleted  bool      `gorm:"not null;default:false" json:"is_completed"`
	ReminderSent bool      `gorm:"not null;default:false" json:"reminder_sent"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
