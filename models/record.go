package models

import "time"

// PatientRecord is metadata for an uploaded result document. The file itself
// lives in Cloudinary; FileRef is its public ID.
type PatientRecord struct {
	ID         string    `bson:"id" json:"id"`
	PatientID  string    `bson:"patient_id" json:"patientId"`
	ClinicID   string    `bson:"clinic_id,omitempty" json:"clinicId,omitempty"` // clinic that produced the result
	UploadedBy string    `bson:"uploaded_by" json:"uploadedBy"`
	Title      string    `bson:"title" json:"title"`
	FileRef    string    `bson:"file_ref" json:"fileRef"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}
