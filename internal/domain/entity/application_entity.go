package entity

import "time"

// ApplicationStatus is the review state of a freelancer application.
// StatusNone is a synthetic value for "no application exists yet"; it is
// never persisted.
type ApplicationStatus string

const (
	StatusNone     ApplicationStatus = "NONE"
	StatusPending  ApplicationStatus = "PENDING"
	StatusApproved ApplicationStatus = "APPROVED"
	StatusRejected ApplicationStatus = "REJECTED"
)

// Valid reports whether s is a persistable status.
func (s ApplicationStatus) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// FreelancerApplication is a buyer's request to be promoted to freelancer.
// One-to-one with User: re-applying resets the existing row to PENDING
// instead of creating a duplicate.
type FreelancerApplication struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	Status    ApplicationStatus `json:"status"`
	Notes     string            `json:"notes,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// ApplicantSummary is the slice of user identity shown next to an
// application in the admin review list.
type ApplicantSummary struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ApplicationWithUser joins an application with its applicant for listings.
type ApplicationWithUser struct {
	FreelancerApplication
	User ApplicantSummary `json:"user"`
}
