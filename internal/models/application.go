package models

import "time"

// ApplicationStatus defines lifecycle states for adoption applications.
type ApplicationStatus string

const (
	// ApplicationStatusPending indicates the application is awaiting review.
	ApplicationStatusPending ApplicationStatus = "pending"
	// ApplicationStatusApproved indicates an admin accepted the application.
	ApplicationStatusApproved ApplicationStatus = "approved"
	// ApplicationStatusRejected indicates an admin declined the application.
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// IsTerminal reports whether no further transition is defined from the status.
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationStatusApproved || s == ApplicationStatusRejected
}

// Valid reports whether the value belongs to the closed status set.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected:
		return true
	}
	return false
}

// LivingSituation is the applicant's housing, from a closed set.
type LivingSituation string

const (
	LivingSituationHouseOwned      LivingSituation = "house_owned"
	LivingSituationHouseRented     LivingSituation = "house_rented"
	LivingSituationApartmentOwned  LivingSituation = "apartment_owned"
	LivingSituationApartmentRented LivingSituation = "apartment_rented"
	LivingSituationOther           LivingSituation = "other"
)

// Valid reports whether the value belongs to the closed living-situation set.
func (l LivingSituation) Valid() bool {
	switch l {
	case LivingSituationHouseOwned, LivingSituationHouseRented,
		LivingSituationApartmentOwned, LivingSituationApartmentRented,
		LivingSituationOther:
		return true
	}
	return false
}

// AdoptionApplication is a user's request to adopt a specific pet.
//
// At most one pending application may exist per (user, pet) pair at any
// instant; rejected and approved history rows for the pair are allowed. The
// database enforces this with a partial unique index on (user_id, pet_id)
// WHERE status = 'pending'.
type AdoptionApplication struct {
	ID                 uint              `gorm:"primaryKey" json:"application_id"`
	PetID              uint              `gorm:"not null;index" json:"pet_id"`
	Pet                *Pet              `gorm:"foreignKey:PetID" json:"pet,omitempty"`
	UserID             uint              `gorm:"not null;index" json:"user_id"`
	User               *User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status             ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ApplicationMessage string            `gorm:"type:text;not null" json:"application_message"`
	ContactPhone       string            `gorm:"size:40;not null" json:"contact_phone"`
	LivingSituation    LivingSituation   `gorm:"type:varchar(30);not null" json:"living_situation"`
	HasOtherPets       bool              `gorm:"not null;default:false" json:"has_other_pets"`
	OtherPetsDetails   *string           `gorm:"type:text" json:"other_pets_details,omitempty"`
	ApplicationDate    time.Time         `gorm:"not null;autoCreateTime;index" json:"application_date"`
	ReviewedAt         *time.Time        `json:"reviewed_at"`
	ReviewedByUserID   *uint             `json:"reviewed_by_user_id,omitempty"`
	AdminNotes         *string           `gorm:"type:text" json:"admin_notes,omitempty"`
	CreatedAt          time.Time         `json:"-"`
	UpdatedAt          time.Time         `json:"-"`
}

// DaysWaiting returns the whole days elapsed since the application was
// submitted, rounded up. A just-submitted application reports 1 day once any
// time has passed at all.
func (a *AdoptionApplication) DaysWaiting(now time.Time) int {
	elapsed := now.Sub(a.ApplicationDate)
	if elapsed <= 0 {
		return 0
	}
	days := int(elapsed / (24 * time.Hour))
	if elapsed%(24*time.Hour) > 0 {
		days++
	}
	return days
}
