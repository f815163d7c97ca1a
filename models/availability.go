package models

import "time"

// TimeBlock is a contiguous open interval within a day, in minutes from
// midnight, half-open [Start, End).
type TimeBlock struct {
	Start int `bson:"start" json:"start"`
	End   int `bson:"end" json:"end"`
}

// Duration returns the block length in minutes.
func (b TimeBlock) Duration() int {
	return b.End - b.Start
}

// Contains reports whether the minute falls inside the block.
func (b TimeBlock) Contains(minute int) bool {
	return minute >= b.Start && minute < b.End
}

// Overlaps reports whether [start, end) intersects the block.
func (b TimeBlock) Overlaps(start, end int) bool {
	return b.Start < end && start < b.End
}

// AvailabilityWindow is the recurring open-hours configuration for one
// (clinic, professional, weekday) tuple. Saved wholesale; blocks are kept
// sorted and non-overlapping.
type AvailabilityWindow struct {
	ID             string      `bson:"id" json:"id"`
	ClinicID       string      `bson:"clinic_id" json:"clinicId"`
	ProfessionalID string      `bson:"professional_id" json:"professionalId"`
	Weekday        int         `bson:"weekday" json:"weekday"` // 0=Sunday .. 6=Saturday
	Active         bool        `bson:"active" json:"active"`
	Blocks         []TimeBlock `bson:"blocks" json:"blocks"`
	UpdatedAt      time.Time   `bson:"updated_at" json:"updatedAt"`
}
