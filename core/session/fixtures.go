package session

import (
	"context"

	"github.com/DustinMarino133/cyberskill/core/user"
)

// Demo deployments hydrate every authorized session with the same canned
// profile for its role; the record's own identity fields are ignored.
// A real per-user lookup slots in through the ProfileResolver seam.
var fixtures = map[string]Profile{
	user.RoleStudent: {
		ID:     "demo-student",
		Name:   "Alex Chen",
		Title:  "Security Apprentice",
		Role:   user.RoleStudent,
		Level:  12,
		XP:     4280,
		Streak: 7,
		Badges: []string{"phishing-spotter", "password-pro", "firewall-rookie"},
	},
	user.RoleTeacher: {
		ID:           "demo-teacher",
		Name:         "Sarah Johnson",
		Title:        "Lead Instructor",
		Role:         user.RoleTeacher,
		ClassCount:   4,
		StudentCount: 112,
	},
	user.RoleCorporate: {
		ID:           "demo-corporate",
		Name:         "Marcus Reed",
		Title:        "Security Awareness Manager",
		Role:         user.RoleCorporate,
		Company:      "Nexus Dynamics",
		TeamSize:     48,
		AvgRiskScore: 72,
	},
}

type fixtureResolver struct{}

var _ ProfileResolver = (*fixtureResolver)(nil)

// NewFixtureResolver returns the demo-mode resolver backed by the canned
// role profiles.
func NewFixtureResolver() ProfileResolver {
	return fixtureResolver{}
}

func (fixtureResolver) Resolve(_ context.Context, rec Record) (Profile, error) {
	profile, ok := fixtures[rec.Role]
	if !ok {
		return Profile{}, ErrUnauthenticated
	}
	return profile, nil
}
