package course

import (
	"fmt"
	"time"
)

type Course struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	Modules     int    `json:"modules"`

	// completion rewards
	CoinReward int `json:"coin_reward"`
	XPReward   int `json:"xp_reward"`
}

type Enrollment struct {
	UserID      string     `json:"user_id"`
	CourseID    string     `json:"course_id"`
	EnrolledAt  time.Time  `json:"enrolled_at"` // UTC
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (e *Enrollment) Completed() bool { return e.CompletedAt != nil }

// Catalog is the fixed demo course list.
type Catalog struct {
	courses map[string]Course
	order   []string
}

func NewCatalog(courses ...Course) (*Catalog, error) {
	c := &Catalog{
		courses: make(map[string]Course, len(courses)),
		order:   make([]string, 0, len(courses)),
	}
	for _, crs := range courses {
		if crs.ID == "" {
			return nil, fmt.Errorf("course %q has no id", crs.Title)
		}
		if _, ok := c.courses[crs.ID]; ok {
			return nil, fmt.Errorf("duplicate course id %q", crs.ID)
		}
		c.courses[crs.ID] = crs
		c.order = append(c.order, crs.ID)
	}
	return c, nil
}

func (c *Catalog) Course(id string) (Course, bool) {
	crs, ok := c.courses[id]
	return crs, ok
}

func (c *Catalog) Courses() []Course {
	courses := make([]Course, 0, len(c.order))
	for _, id := range c.order {
		courses = append(courses, c.courses[id])
	}
	return courses
}

// DefaultCatalog is the demo course inventory.
func DefaultCatalog() *Catalog {
	catalog, err := NewCatalog(
		Course{
			ID:          "phishing-defense",
			Title:       "Phishing Defense",
			Description: "Spot and report phishing attempts before they land.",
			Difficulty:  "Beginner",
			Modules:     6,
			CoinReward:  120,
			XPReward:    250,
		},
		Course{
			ID:          "password-hygiene",
			Title:       "Password Hygiene",
			Description: "Build and manage strong credentials.",
			Difficulty:  "Beginner",
			Modules:     4,
			CoinReward:  100,
			XPReward:    200,
		},
		Course{
			ID:          "network-fundamentals",
			Title:       "Network Fundamentals",
			Description: "Understand the traffic your firewall sees.",
			Difficulty:  "Intermediate",
			Modules:     8,
			CoinReward:  150,
			XPReward:    300,
		},
		Course{
			ID:          "social-engineering",
			Title:       "Social Engineering",
			Description: "Recognize manipulation tactics in the wild.",
			Difficulty:  "Intermediate",
			Modules:     7,
			CoinReward:  180,
			XPReward:    350,
		},
		Course{
			ID:          "incident-response",
			Title:       "Incident Response",
			Description: "Contain, eradicate and recover from a breach.",
			Difficulty:  "Advanced",
			Modules:     10,
			CoinReward:  250,
			XPReward:    500,
		},
	)
	if err != nil {
		panic(err) // the demo catalog is fixed; a bad entry is a programming error
	}
	return catalog
}
