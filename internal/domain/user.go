package domain

import (
	"strings"
	"time"
)

const (
	RoleJobSeeker = "job_seeker"
	RoleEmployer  = "employer"
	RoleAdmin     = "admin"
	RoleRecruiter = "recruiter"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	switch r {
	case RoleJobSeeker, RoleEmployer, RoleAdmin, RoleRecruiter:
		return true
	}
	return false
}

// SelfServiceRole reports whether r may be chosen at signup.
func SelfServiceRole(r string) bool {
	return r == RoleJobSeeker || r == RoleEmployer
}

// NormalizeEmail lower-cases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type User struct {
	UserID       string  `json:"id" dynamodbav:"user_id"`
	Email        string  `json:"email" dynamodbav:"email"`
	PasswordHash string  `json:"-" dynamodbav:"password_hash"`
	FirstName    string  `json:"first_name" dynamodbav:"first_name"`
	LastName     string  `json:"last_name" dynamodbav:"last_name"`
	PhoneNumber  *string `json:"phone_number" dynamodbav:"phone_number,omitempty"`
	Role         string  `json:"role" dynamodbav:"role"`
	IsActive     bool    `json:"is_active" dynamodbav:"is_active"`
	IsVerified   bool    `json:"is_verified" dynamodbav:"is_verified"`

	// Record-resident OTP used by the legacy signup / verify-email flow.
	OTP          *string    `json:"-" dynamodbav:"otp,omitempty"`
	OTPCreatedAt *time.Time `json:"-" dynamodbav:"otp_created_at,omitempty"`

	Bio         *string `json:"bio" dynamodbav:"bio,omitempty"`
	Location    *string `json:"location" dynamodbav:"location,omitempty"`
	Website     *string `json:"website" dynamodbav:"website,omitempty"`
	LinkedInURL *string `json:"linkedin_url" dynamodbav:"linkedin_url,omitempty"`
	GithubURL   *string `json:"github_url" dynamodbav:"github_url,omitempty"`
	TwitterURL  *string `json:"twitter_url" dynamodbav:"twitter_url,omitempty"`

	// Job seeker specific.
	CurrentPosition *string `json:"current_position" dynamodbav:"current_position,omitempty"`
	Education       *string `json:"education" dynamodbav:"education,omitempty"`
	ExperienceYears *int    `json:"experience_years" dynamodbav:"experience_years,omitempty"`

	// Employer specific.
	CompanyName        *string `json:"company_name" dynamodbav:"company_name,omitempty"`
	CompanySize        *string `json:"company_size" dynamodbav:"company_size,omitempty"`
	CompanyWebsite     *string `json:"company_website" dynamodbav:"company_website,omitempty"`
	CompanyDescription *string `json:"company_description" dynamodbav:"company_description,omitempty"`

	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// ProfileCompletion returns the share of filled profile fields as a 0-100 percentage.
func (u *User) ProfileCompletion() int {
	filled := []bool{
		u.FirstName != "",
		u.LastName != "",
		nonEmpty(u.PhoneNumber),
		nonEmpty(u.Bio),
		nonEmpty(u.Location),
	}
	switch u.Role {
	case RoleJobSeeker:
		filled = append(filled, nonEmpty(u.CurrentPosition), nonEmpty(u.Education), u.ExperienceYears != nil)
	case RoleEmployer:
		filled = append(filled, nonEmpty(u.CompanyName), nonEmpty(u.CompanyDescription), nonEmpty(u.CompanyWebsite))
	}
	done := 0
	for _, f := range filled {
		if f {
			done++
		}
	}
	return done * 100 / len(filled)
}

func nonEmpty(s *string) bool { return s != nil && *s != "" }

// TokenPair is the stateless session credential returned on login and registration.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AuthResult bundles a user with freshly issued session tokens.
type AuthResult struct {
	User   *User
	Tokens *TokenPair
}
