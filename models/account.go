package models

import "time"

// Account roles. Staff accounts belong to a clinic and bypass the caregiver
// permission check for scheduling actions at their clinic.
const (
	RolePatient   = "patient"
	RoleCaregiver = "caregiver"
	RoleStaff     = "staff"
)

// Account is a platform login: patient, caregiver or clinic staff.
type Account struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	ClinicID     string    `bson:"clinic_id,omitempty" json:"clinicId,omitempty"` // staff only
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}

// IsStaff reports whether the account is clinic staff.
func (a Account) IsStaff() bool {
	return a.Role == RoleStaff
}
