package models

import "gorm.io/gorm"

type DirectMessage struct {
	gorm.Model

	SenderID   uint   `gorm:"not null;index" json:"sender_id"`
	ReceiverID uint   `gorm:"not null;index" json:"receiver_id"`
	Content    string `gorm:"not null" json:"content"`
	IsRead     bool   `gorm:"not null;default:false" json:"is_read"`

	// Relationships
	Sender   User `gorm:"foreignKey:SenderID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Receiver User `gorm:"foreignKey:ReceiverID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
