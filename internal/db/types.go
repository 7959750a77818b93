package db

import (
	"time"

	"github.com/google/uuid"
)

// DefaultApplicationStatus is assigned to applications created without a status.
const DefaultApplicationStatus = "Not Submitted"

// User represents a candidate profile
type User struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       *string   `json:"email"`
	Phone       string    `json:"phone"`
	Skills      string    `json:"skills"`
	Education   string    `json:"education"`
	WorkHistory string    `json:"work_history"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserCreateInput holds the fields needed to create a user.
// An empty Email is stored as NULL so several users may omit it.
type UserCreateInput struct {
	Name        string
	Email       string
	Phone       string
	Skills      string
	Education   string
	WorkHistory string
}

// Application represents a tracked job application
type Application struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	CompanyName string    `json:"company_name"`
	JobTitle    string    `json:"job_title"`
	JDURL       string    `json:"jd_url"`
	Status      string    `json:"status"`
	Score       *int      `json:"score"`
	Notes       *string   `json:"notes"`
	AppliedDate time.Time `json:"applied_date"`
}

// ApplicationCreateInput holds the fields needed to create an application.
type ApplicationCreateInput struct {
	UserID      uuid.UUID
	CompanyName string
	JobTitle    string
	JDURL       string
	Status      string
	Notes       *string
}

// ApplicationUpdate is a partial update; nil fields keep their stored value.
type ApplicationUpdate struct {
	Status *string
	Score  *int
	Notes  *string
}

// IsEmpty reports whether the update changes nothing.
func (u ApplicationUpdate) IsEmpty() bool {
	return u.Status == nil && u.Score == nil && u.Notes == nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
