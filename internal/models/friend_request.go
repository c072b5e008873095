package models

import (
	"fmt"

	"gorm.io/gorm"
)

const (
	FriendRequestPending  = "pending"
	FriendRequestAccepted = "accepted"
	FriendRequestRejected = "rejected"
)

type FriendRequest struct {
	gorm.Model

	SenderID   uint   `gorm:"not null;index" json:"sender_id"`
	ReceiverID uint   `gorm:"not null;index" json:"receiver_id"`
	Status     string `gorm:"not null;default:pending" json:"status"`

	// One row per unordered pair, enforced by the database rather than a
	// read-then-insert check.
	PairKey string `gorm:"not null;uniqueIndex" json:"-"`

	// Relationships
	Sender   User `gorm:"foreignKey:SenderID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Receiver User `gorm:"foreignKey:ReceiverID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

func (fr *FriendRequest) BeforeCreate(tx *gorm.DB) error {
	if fr.PairKey == "" {
		fr.PairKey = PairKeyFor(fr.SenderID, fr.ReceiverID)
	}
	return nil
}

// PairKeyFor normalizes the two user IDs so A->B and B->A collide.
func PairKeyFor(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}
