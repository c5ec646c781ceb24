package applications

import (
	"time"

	"github.com/google/uuid"
)

// Status tracks where an application sits in the hiring funnel.
type Status string

const (
	StatusDraft              Status = "DRAFT"
	StatusApplied            Status = "APPLIED"
	StatusReviewing          Status = "REVIEWING"
	StatusInterviewScheduled Status = "INTERVIEW_SCHEDULED"
	StatusInterviewed        Status = "INTERVIEWED"
	StatusTechnicalTest      Status = "TECHNICAL_TEST"
	StatusReferenceCheck     Status = "REFERENCE_CHECK"
	StatusOfferReceived      Status = "OFFER_RECEIVED"
	StatusNegotiating        Status = "NEGOTIATING"
	StatusAccepted           Status = "ACCEPTED"
	StatusRejected           Status = "REJECTED"
	StatusWithdrawn          Status = "WITHDRAWN"
	StatusOnHold             Status = "ON_HOLD"
)

var validStatuses = map[Status]struct{}{
	StatusDraft: {}, StatusApplied: {}, StatusReviewing: {},
	StatusInterviewScheduled: {}, StatusInterviewed: {}, StatusTechnicalTest: {},
	StatusReferenceCheck: {}, StatusOfferReceived: {}, StatusNegotiating: {},
	StatusAccepted: {}, StatusRejected: {}, StatusWithdrawn: {}, StatusOnHold: {},
}

// Valid reports whether the status is a known funnel stage.
func (s Status) Valid() bool {
	_, ok := validStatuses[s]
	return ok
}

// JobType classifies the engagement.
type JobType string

const (
	JobFullTime   JobType = "FULL_TIME"
	JobPartTime   JobType = "PART_TIME"
	JobContract   JobType = "CONTRACT"
	JobFreelance  JobType = "FREELANCE"
	JobInternship JobType = "INTERNSHIP"
	JobRemote     JobType = "REMOTE"
	JobHybrid     JobType = "HYBRID"
)

// Method records how the application was submitted.
type Method string

const (
	MethodWebsite   Method = "WEBSITE"
	MethodEmail     Method = "EMAIL"
	MethodLinkedIn  Method = "LINKEDIN"
	MethodJobStreet Method = "JOBSTREET"
	MethodIndeed    Method = "INDEED"
	MethodReferral  Method = "REFERRAL"
	MethodDirect    Method = "DIRECT"
	MethodOther     Method = "OTHER"
)

// Application is one tracked job application, owned by a single user.
type Application struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"userId"`
	CompanyName     string     `json:"companyName"`
	Position        string     `json:"position"`
	JobType         JobType    `json:"jobType,omitempty"`
	Location        string     `json:"location,omitempty"`
	SalaryRange     string     `json:"salaryRange,omitempty"`
	JobDescription  string     `json:"jobDescription,omitempty"`
	Method          Method     `json:"applicationMethod,omitempty"`
	ApplicationURL  string     `json:"applicationUrl,omitempty"`
	ContactPerson   string     `json:"contactPerson,omitempty"`
	ContactEmail    string     `json:"contactEmail,omitempty"`
	ContactPhone    string     `json:"contactPhone,omitempty"`
	Status          Status     `json:"status"`
	Priority        int        `json:"priority"`
	ApplicationDate time.Time  `json:"applicationDate"`
	InterviewDate   *time.Time `json:"interviewDate,omitempty"`
	DeadlineDate    *time.Time `json:"deadlineDate,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	Tags            []string   `json:"tags"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// StatusChange is one row of the status history trail.
type StatusChange struct {
	ID            uuid.UUID `json:"id"`
	ApplicationID uuid.UUID `json:"applicationId"`
	FromStatus    *Status   `json:"fromStatus,omitempty"`
	ToStatus      Status    `json:"toStatus"`
	Reason        string    `json:"reason,omitempty"`
	ChangedAt     time.Time `json:"changedAt"`
}

// ListItem decorates an application with listing aggregates.
type ListItem struct {
	Application
	OpenReminders int `json:"openReminders"`
	Documents     int `json:"documents"`
}

// Detail is the single-application view with its history.
type Detail struct {
	Application
	StatusHistory []StatusChange `json:"statusHistory"`
}

// ListFilter narrows the listing.
type ListFilter struct {
	Status   *Status
	Priority *int
}
