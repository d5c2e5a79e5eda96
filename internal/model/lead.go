package model

import "time"

type Lead struct {
	ID              int64
	UserID          int64
	Name            string
	PhoneNumber     string
	Email           string
	HasWhatsApp     bool
	InstagramID     *string
	FacebookID      *string
	BookedTimestamp *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Appointment struct {
	ID             int64
	UserID         int64
	LeadID         int64
	With           string
	ConversationID *int64
	Date           time.Time // calendar day, UTC midnight
	TimeSlot       string    // 12-hour label, e.g. "10:30 AM"
	ScheduledAt    time.Time
	CreatedAt      time.Time
}
