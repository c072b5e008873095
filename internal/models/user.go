package models

import "gorm.io/gorm"

const (
	RoleOrdinary = "ordinary"
	RoleAdmin    = "admin"
)

const (
	PlanFree  = "free"
	PlanPro   = "pro"
	PlanElite = "elite"
)

type User struct {
	gorm.Model

	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null;default:ordinary"`
	Plan         string `gorm:"not null;default:free"`

	// Relationships
	Tasks            []Task           `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	SentRequests     []FriendRequest  `gorm:"foreignKey:SenderID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ReceivedRequests []FriendRequest  `gorm:"foreignKey:ReceiverID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	SentMessages     []DirectMessage  `gorm:"foreignKey:SenderID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ReceivedMessages []DirectMessage  `gorm:"foreignKey:ReceiverID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ToolInvocations  []ToolInvocation `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func ValidRole(role string) bool {
	return role == RoleOrdinary || role == RoleAdmin
}

func ValidPlan(plan string) bool {
	return plan == PlanFree || plan == PlanPro || plan == PlanElite
}
