package models

import (
	"time"

	"gorm.io/gorm"
)

// Guest is a stored guest record. Deleted guests keep their row with IsDeleted set.
type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	FirstName string `gorm:"size:100;not null" json:"firstName"`
	LastName  string `gorm:"size:100;not null" json:"lastName"`
	Email     string `gorm:"size:150;not null;index" json:"email"`
	Phone     string `gorm:"size:20;not null" json:"phone"`

	Address  string `gorm:"size:255" json:"address"`
	IDNumber string `gorm:"size:255;column:id_number" json:"idNumber"`

	// room type, floor, smoking etc.
	Preferences string `gorm:"type:text" json:"preferences"`
	StayHistory string `gorm:"type:text" json:"stayHistory"`

	LoyaltyPoints int  `gorm:"not null;default:0" json:"loyaltyPoints"`
	IsDeleted     bool `gorm:"not null;default:false;index" json:"isDeleted"`

	// Mirrors Email while the guest is active and is NULL once deleted, so the
	// unique index only spans active guests.
	ActiveEmail *string `gorm:"size:150;uniqueIndex:idx_guests_active_email" json:"-"`
}

// BeforeSave keeps ActiveEmail in step with Email and IsDeleted on every
// insert and update.
func (g *Guest) BeforeSave(tx *gorm.DB) error {
	g.syncActiveEmail()
	return nil
}

func (g *Guest) syncActiveEmail() {
	if g.IsDeleted {
		g.ActiveEmail = nil
		return
	}
	email := g.Email
	g.ActiveEmail = &email
}

func (g Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}

// ToResponse projects the stored guest into its public view.
func (g Guest) ToResponse() GuestResponse {
	return GuestResponse{
		ID:            g.ID,
		FullName:      g.FullName(),
		Email:         g.Email,
		Phone:         g.Phone,
		Preferences:   g.Preferences,
		StayHistory:   g.StayHistory,
		LoyaltyPoints: g.LoyaltyPoints,
	}
}
