package models

import "time"

// Scheduling actions a caregiver may be delegated.
const (
	ActionBook          = "book"
	ActionCancel        = "cancel"
	ActionViewHistory   = "viewHistory"
	ActionUploadResults = "uploadResults"
)

// Relationship types recognised on a caregiver link.
const (
	RelationshipParent            = "parent"
	RelationshipLegalGuardian     = "legal_guardian"
	RelationshipFamily            = "family"
	RelationshipHiredProfessional = "hired_professional"
)

// CaregiverPermissions is the per-link permission set. Every flag defaults to
// false; there is no implicit caregiver privilege.
type CaregiverPermissions struct {
	CanBook          bool `bson:"can_book" json:"canBook"`
	CanCancel        bool `bson:"can_cancel" json:"canCancel"`
	CanViewHistory   bool `bson:"can_view_history" json:"canViewHistory"`
	CanUploadResults bool `bson:"can_upload_results" json:"canUploadResults"`
}

// Allows reports whether the permission set grants the given action.
func (p CaregiverPermissions) Allows(action string) bool {
	switch action {
	case ActionBook:
		return p.CanBook
	case ActionCancel:
		return p.CanCancel
	case ActionViewHistory:
		return p.CanViewHistory
	case ActionUploadResults:
		return p.CanUploadResults
	default:
		return false
	}
}

// IsFull reports whether every permission bit is set.
func (p CaregiverPermissions) IsFull() bool {
	return p.CanBook && p.CanCancel && p.CanViewHistory && p.CanUploadResults
}

// CaregiverLink relates one caregiver to one patient with an explicit
// permission set. Owned by the patient's relationship set; destroyed only by
// explicit unlinking, never by implicit expiry.
type CaregiverLink struct {
	ID               string               `bson:"id" json:"id"`
	CaregiverID      string               `bson:"caregiver_id" json:"caregiverId"`
	PatientID        string               `bson:"patient_id" json:"patientId"`
	RelationshipType string               `bson:"relationship_type" json:"relationshipType"`
	Permissions      CaregiverPermissions `bson:"permissions" json:"permissions"`
	AuthDocRef       string               `bson:"auth_doc_ref,omitempty" json:"authDocRef,omitempty"`
	CreatedAt        time.Time            `bson:"created_at" json:"createdAt"`
}

// ValidRelationship reports whether the relationship type is one of the
// recognised values.
func ValidRelationship(relationshipType string) bool {
	switch relationshipType {
	case RelationshipParent, RelationshipLegalGuardian, RelationshipFamily, RelationshipHiredProfessional:
		return true
	}
	return false
}
