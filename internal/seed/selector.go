package seed

import "strings"

// Selector picks the profile a newly registered account is seeded with.
type Selector struct {
	Default   string
	Overrides map[string]string
}

// For returns the profile name for email. Emails compare case-insensitively.
func (s Selector) For(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	for e, name := range s.Overrides {
		if strings.ToLower(e) == email {
			return name
		}
	}
	if s.Default == "" {
		return Minimal
	}
	return s.Default
}
