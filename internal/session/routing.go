package session

import (
	"strings"

	"github.com/dtroode/jobboard/internal/model"
)

// RoleRoutes describes the section of the application owned by a role.
type RoleRoutes struct {
	Namespace string
	Home      string
}

// Routes is the location table the routing policy works with.
type Routes struct {
	Login          string
	ChangePassword string
	Profile        string
	Onboarding     string
	Roles          map[model.Role]RoleRoutes
}

// DefaultRoutes returns the job board location table.
func DefaultRoutes() Routes {
	return Routes{
		Login:          "/login",
		ChangePassword: "/change-password",
		Profile:        "/profile",
		Onboarding:     "/onboarding",
		Roles: map[model.Role]RoleRoutes{
			model.RoleAdmin:     {Namespace: "/admin", Home: "/admin/dashboard"},
			model.RoleJobPoster: {Namespace: "/poster", Home: "/poster/dashboard"},
			model.RoleJobSeeker: {Namespace: "/seeker", Home: "/seeker/dashboard"},
			model.RoleReferrer:  {Namespace: "/referrer", Home: "/referrer/dashboard"},
		},
	}
}

// Resolve returns where an authenticated identity at location should be sent.
// An empty result means stay in place.
func Resolve(id model.Identity, location string, routes Routes) string {
	path := cleanPath(location)

	if id.MustChangePassword {
		if path == routes.ChangePassword {
			return ""
		}
		return routes.ChangePassword
	}

	home, ok := routes.Roles[id.Role]
	if !ok {
		return ""
	}

	if id.Role == model.RoleJobSeeker && id.OnboardingState != model.OnboardingCompleted {
		home = RoleRoutes{Namespace: routes.Onboarding, Home: routes.Onboarding}
	}

	if underPrefix(path, home.Namespace) || underPrefix(path, routes.Profile) {
		return ""
	}

	return home.Home
}

func cleanPath(location string) string {
	path, _, _ := strings.Cut(location, "#")
	path, _, _ = strings.Cut(path, "?")
	path = strings.TrimRight(path, "/")
	if path == "" {
		return "/"
	}
	return path
}

func underPrefix(path, prefix string) bool {
	if prefix == "" {
		return false
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
