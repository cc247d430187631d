package models

import "time"

// PetStatus defines the listing states for a pet.
type PetStatus string

const (
	// PetStatusPending indicates the listing awaits admin approval.
	PetStatusPending PetStatus = "pending"
	// PetStatusApproved indicates the listing is visible to the public.
	PetStatusApproved PetStatus = "approved"
)

// Pet is an animal available for adoption.
type Pet struct {
	ID          uint      `gorm:"primaryKey" json:"pet_id"`
	Name        string    `gorm:"size:120;not null" json:"name"`
	Species     string    `gorm:"size:60;not null" json:"species"`
	Age         int       `gorm:"not null" json:"age"`
	Description string    `gorm:"type:text" json:"description"`
	PhotoURL    string    `json:"photo_url"`
	Status      PetStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	LocationID  uint      `gorm:"not null;index" json:"location_id"`
	Location    *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
