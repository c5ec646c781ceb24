package reminders

import (
	"time"

	"github.com/google/uuid"
)

// Reminder is a dated follow-up note attached to an application.
type Reminder struct {
	ID            uuid.UUID  `json:"id"`
	ApplicationID uuid.UUID  `json:"applicationId"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	ReminderDate  time.Time  `json:"reminderDate"`
	IsCompleted   bool       `json:"isCompleted"`
	NotifiedAt    *time.Time `json:"notifiedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// ApplicationSummary is the slice of the application shown next to reminders.
type ApplicationSummary struct {
	ID          uuid.UUID `json:"id"`
	CompanyName string    `json:"companyName"`
	Position    string    `json:"position"`
	Status      string    `json:"status"`
}

// ListItem joins a reminder with its application summary.
type ListItem struct {
	Reminder
	Application ApplicationSummary `json:"application"`
}

// DueReminder is what the background scanner works with: the reminder plus
// the owning user's address.
type DueReminder struct {
	Reminder
	UserEmail    string
	UserFullName string
	CompanyName  string
	Position     string
}
