package chores

import (
	"fmt"
	"strings"
)

// User is a household member who completes tasks.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// UserColors is the palette offered for new users.
var UserColors = []string{"#F4A261", "#7ECFC0", "#B09EE8", "#F0A0C0", "#9DC97A", "#74C0FC", "#E8C547", "#D4A5A5"}

// DefaultUsers is the household a fresh install starts with.
func DefaultUsers() []User {
	return []User{
		{ID: "A", Name: "Me", Color: "#F4A261"},
		{ID: "B", Name: "Partner", Color: "#7ECFC0"},
	}
}

// ValidateUsers rejects empty lists, blank ids or names, and duplicate ids.
// Missing colors are filled from UserColors.
func ValidateUsers(users []User) ([]User, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("%w: at least one user is required", ErrInvalidUser)
	}
	out := make([]User, len(users))
	seen := make(map[string]bool, len(users))
	for i, u := range users {
		u.ID = strings.TrimSpace(u.ID)
		u.Name = strings.TrimSpace(u.Name)
		if u.ID == "" || u.Name == "" {
			return nil, fmt.Errorf("%w: user %d needs an id and a name", ErrInvalidUser, i)
		}
		if seen[u.ID] {
			return nil, fmt.Errorf("%w: duplicate user id %q", ErrInvalidUser, u.ID)
		}
		seen[u.ID] = true
		if u.Color == "" {
			u.Color = UserColors[i%len(UserColors)]
		}
		out[i] = u
	}
	return out, nil
}

// FindUser returns the user with id, if present.
func FindUser(users []User, id string) (User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}
