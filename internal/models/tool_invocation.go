package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ToolInvocation is the audit trail of assistant tool calls against a
// user's tasks.
type ToolInvocation struct {
	gorm.Model

	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Tool      string         `gorm:"not null" json:"tool"`
	Arguments datatypes.JSON `gorm:"type:jsonb" json:"arguments"`
	Result    string         `json:"result"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
