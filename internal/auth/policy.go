package auth

import "strings"

// Policy decides whether an email address holds admin rights. Membership in
// the configured allow-list is the sole authorization check in the system.
type Policy func(email string) bool

// AllowList builds a Policy from a fixed set of admin email addresses.
// Matching is case-insensitive.
func AllowList(emails []string) Policy {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		set[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	return func(email string) bool {
		_, ok := set[strings.ToLower(strings.TrimSpace(email))]
		return ok
	}
}
