package models

import "time"

// Location is a shelter or adoption center where pets are housed.
type Location struct {
	ID        uint      `gorm:"primaryKey" json:"location_id"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	Address   string    `gorm:"size:255;not null" json:"address"`
	Phone     string    `gorm:"size:40" json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
