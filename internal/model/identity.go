package model

import "strings"

// Role enumerates the principal roles of the job board.
type Role string

const (
	// RoleAdmin administers users and jobs.
	RoleAdmin Role = "admin"
	// RoleJobPoster publishes jobs.
	RoleJobPoster Role = "job_poster"
	// RoleJobSeeker applies for jobs.
	RoleJobSeeker Role = "job_seeker"
	// RoleReferrer refers candidates.
	RoleReferrer Role = "referrer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleJobPoster, RoleJobSeeker, RoleReferrer:
		return true
	}
	return false
}

// ParseRole normalizes a role string. Legacy "administrator" maps to RoleAdmin.
func ParseRole(s string) Role {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if r == "administrator" {
		return RoleAdmin
	}
	return r
}

// OnboardingState tracks job seeker onboarding. The zero value means undefined.
type OnboardingState string

const (
	OnboardingNotStarted OnboardingState = "not_started"
	OnboardingInProgress OnboardingState = "in_progress"
	OnboardingCompleted  OnboardingState = "completed"
)

// Valid reports whether s is a known, defined onboarding state.
func (s OnboardingState) Valid() bool {
	switch s {
	case OnboardingNotStarted, OnboardingInProgress, OnboardingCompleted:
		return true
	}
	return false
}

// Profile holds optional profile attributes. They are carried as-is and never
// interpreted by the session core.
type Profile struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Location  string `json:"location,omitempty"`
	Bio       string `json:"bio,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Website   string `json:"website,omitempty"`
}

// Identity is the authenticated principal as seen by a client.
type Identity struct {
	ID                 string
	Email              string
	Username           string
	DisplayName        string
	Role               Role
	MustChangePassword bool
	OnboardingState    OnboardingState
	IsSuperAdmin       bool
	Profile            Profile
}

// ProfilePatch is a sparse update of an Identity. Nil fields are left untouched.
type ProfilePatch struct {
	Email           *string
	Username        *string
	DisplayName     *string
	OnboardingState *OnboardingState
	FirstName       *string
	LastName        *string
	Phone           *string
	Location        *string
	Bio             *string
	LinkedIn        *string
	GitHub          *string
	Website         *string
}

// Apply merges the patch into id in place.
func (p ProfilePatch) Apply(id *Identity) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&id.Email, p.Email)
	set(&id.Username, p.Username)
	set(&id.DisplayName, p.DisplayName)
	set(&id.Profile.FirstName, p.FirstName)
	set(&id.Profile.LastName, p.LastName)
	set(&id.Profile.Phone, p.Phone)
	set(&id.Profile.Location, p.Location)
	set(&id.Profile.Bio, p.Bio)
	set(&id.Profile.LinkedIn, p.LinkedIn)
	set(&id.Profile.GitHub, p.GitHub)
	set(&id.Profile.Website, p.Website)
	if p.OnboardingState != nil {
		id.OnboardingState = *p.OnboardingState
	}
}

// Session is a point-in-time copy of the client authentication context.
type Session struct {
	Identity  *Identity
	Token     string
	IsLoading bool
}

// IsAuthenticated is true iff both identity and token are present.
func (s Session) IsAuthenticated() bool {
	return s.Identity != nil && s.Token != ""
}
