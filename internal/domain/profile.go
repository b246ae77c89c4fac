package domain

// UpdateProfileRequest is the wire shape of a profile update. Every field is
// optional; nil means "leave unchanged".
type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,min=1,max=30"`
	LastName    *string `json:"last_name" validate:"omitempty,min=1,max=30"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=15"`
	Bio         *string `json:"bio" validate:"omitempty,max=500"`
	Location    *string `json:"location" validate:"omitempty,max=100"`
	Website     *string `json:"website" validate:"omitempty,url"`
	LinkedInURL *string `json:"linkedin_url" validate:"omitempty,url"`
	GithubURL   *string `json:"github_url" validate:"omitempty,url"`
	TwitterURL  *string `json:"twitter_url" validate:"omitempty,url"`

	CurrentPosition *string `json:"current_position" validate:"omitempty,max=100"`
	Education       *string `json:"education" validate:"omitempty,max=200"`
	ExperienceYears *int    `json:"experience_years" validate:"omitempty,min=0,max=80"`

	CompanyName        *string `json:"company_name" validate:"omitempty,max=100"`
	CompanySize        *string `json:"company_size" validate:"omitempty,max=50"`
	CompanyWebsite     *string `json:"company_website" validate:"omitempty,url"`
	CompanyDescription *string `json:"company_description"`
}

// RoleFields is the role-specific half of a profile update. Each role owns
// exactly one implementation; see NewProfileUpdate.
type RoleFields interface {
	// Apply writes the set fields into a store update map keyed by attribute name.
	Apply(updates map[string]interface{})
}

// JobSeekerFields is the field set owned by job seekers.
type JobSeekerFields struct {
	CurrentPosition *string
	Education       *string
	ExperienceYears *int
}

func (f JobSeekerFields) Apply(updates map[string]interface{}) {
	setIf(updates, "current_position", f.CurrentPosition)
	setIf(updates, "education", f.Education)
	if f.ExperienceYears != nil {
		updates["experience_years"] = *f.ExperienceYears
	}
}

// EmployerFields is the field set owned by employers and recruiters.
type EmployerFields struct {
	CompanyName        *string
	CompanySize        *string
	CompanyWebsite     *string
	CompanyDescription *string
}

func (f EmployerFields) Apply(updates map[string]interface{}) {
	setIf(updates, "company_name", f.CompanyName)
	setIf(updates, "company_size", f.CompanySize)
	setIf(updates, "company_website", f.CompanyWebsite)
	setIf(updates, "company_description", f.CompanyDescription)
}

// NoRoleFields is used by roles without a role-specific field set.
type NoRoleFields struct{}

func (NoRoleFields) Apply(map[string]interface{}) {}

// ProfileUpdate is a validated profile change: common fields plus the field
// set belonging to the user's role.
type ProfileUpdate struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Bio         *string
	Location    *string
	Website     *string
	LinkedInURL *string
	GithubURL   *string
	TwitterURL  *string
	Role        RoleFields
}

// NewProfileUpdate builds the variant for role and rejects fields that belong
// to a different role.
func NewProfileUpdate(role string, req UpdateProfileRequest) (*ProfileUpdate, error) {
	pu := &ProfileUpdate{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Bio:         req.Bio,
		Location:    req.Location,
		Website:     req.Website,
		LinkedInURL: req.LinkedInURL,
		GithubURL:   req.GithubURL,
		TwitterURL:  req.TwitterURL,
	}

	seeker := JobSeekerFields{
		CurrentPosition: req.CurrentPosition,
		Education:       req.Education,
		ExperienceYears: req.ExperienceYears,
	}
	employer := EmployerFields{
		CompanyName:        req.CompanyName,
		CompanySize:        req.CompanySize,
		CompanyWebsite:     req.CompanyWebsite,
		CompanyDescription: req.CompanyDescription,
	}

	verr := &ValidationError{}
	switch role {
	case RoleJobSeeker:
		rejectEmployerFields(verr, employer, "job seekers")
		pu.Role = seeker
	case RoleEmployer, RoleRecruiter:
		rejectSeekerFields(verr, seeker, "employers")
		pu.Role = employer
	case RoleAdmin:
		rejectSeekerFields(verr, seeker, "admins")
		rejectEmployerFields(verr, employer, "admins")
		pu.Role = NoRoleFields{}
	default:
		verr.Add("role", "unknown role")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return pu, nil
}

// Updates flattens the change into a store update map. An empty map means no change.
func (p *ProfileUpdate) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	setIf(updates, "first_name", p.FirstName)
	setIf(updates, "last_name", p.LastName)
	setIf(updates, "phone_number", p.PhoneNumber)
	setIf(updates, "bio", p.Bio)
	setIf(updates, "location", p.Location)
	setIf(updates, "website", p.Website)
	setIf(updates, "linkedin_url", p.LinkedInURL)
	setIf(updates, "github_url", p.GithubURL)
	setIf(updates, "twitter_url", p.TwitterURL)
	if p.Role != nil {
		p.Role.Apply(updates)
	}
	return updates
}

func rejectSeekerFields(verr *ValidationError, f JobSeekerFields, who string) {
	msg := "not applicable for " + who
	if f.CurrentPosition != nil {
		verr.Add("current_position", msg)
	}
	if f.Education != nil {
		verr.Add("education", msg)
	}
	if f.ExperienceYears != nil {
		verr.Add("experience_years", msg)
	}
}

func rejectEmployerFields(verr *ValidationError, f EmployerFields, who string) {
	msg := "not applicable for " + who
	if f.CompanyName != nil {
		verr.Add("company_name", msg)
	}
	if f.CompanySize != nil {
		verr.Add("company_size", msg)
	}
	if f.CompanyWebsite != nil {
		verr.Add("company_website", msg)
	}
	if f.CompanyDescription != nil {
		verr.Add("company_description", msg)
	}
}

func setIf(updates map[string]interface{}, key string, v *string) {
	if v != nil {
		updates[key] = *v
	}
}
