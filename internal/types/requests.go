package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their JSON names so API errors match the request body.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CreateUserRequest represents the request to create a user profile.
type CreateUserRequest struct {
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string `json:"phone,omitempty"`
	Skills      string `json:"skills" validate:"required"`
	Education   string `json:"education" validate:"required"`
	WorkHistory string `json:"work_history" validate:"required"`
}

// CreateApplicationRequest represents the request to track a new job application.
type CreateApplicationRequest struct {
	UserID      string  `json:"user_id" validate:"required,uuid"`
	CompanyName string  `json:"company_name" validate:"required"`
	JobTitle    string  `json:"job_title" validate:"required"`
	JDURL       string  `json:"jd_url" validate:"required,url"`
	Status      string  `json:"status,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// UpdateApplicationRequest is a partial update; nil fields are left unchanged.
type UpdateApplicationRequest struct {
	Status *string `json:"status,omitempty" validate:"omitempty,min=1"`
	Score  *int    `json:"score,omitempty" validate:"omitempty,min=0,max=100"`
	Notes  *string `json:"notes,omitempty"`
}

// ResumeAnalyzeRequest asks for a resume to be scored against the job description at JDURL.
type ResumeAnalyzeRequest struct {
	Resume string `json:"resume" validate:"required"`
	JDURL  string `json:"jd_url" validate:"required,url"`
}

// AnswerRequest asks for a tailored answer to an application question.
type AnswerRequest struct {
	Profile  string `json:"profile" validate:"required"`
	JDURL    string `json:"jd_url" validate:"required,url"`
	Question string `json:"question" validate:"required"`
}

// JobSearchRequest asks for jobs matching a resume.
type JobSearchRequest struct {
	Resume        string `json:"resume" validate:"required"`
	JobQuery      string `json:"job_query"`
	Location      string `json:"location,omitempty"`
	MinMatchScore *int   `json:"min_match_score,omitempty" validate:"omitempty,min=0,max=100"`
}

// Query converts the request into a pipeline Query.
func (r *JobSearchRequest) Query() Query {
	return NewQuery(r.JobQuery, r.Location, r.MinMatchScore)
}

// Validate validates the CreateUserRequest using the validator.
func (r *CreateUserRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the CreateApplicationRequest using the validator.
func (r *CreateApplicationRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the UpdateApplicationRequest using the validator.
func (r *UpdateApplicationRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ResumeAnalyzeRequest using the validator.
func (r *ResumeAnalyzeRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the AnswerRequest using the validator.
func (r *AnswerRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the JobSearchRequest using the validator.
func (r *JobSearchRequest) Validate() error {
	return validate.Struct(r)
}
