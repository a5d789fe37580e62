package entity

import "strings"

// ContactDetail holds the ways to reach a user. Every user has exactly one.
type ContactDetail struct {
	EmailAddress string
	MobileNumber string
}

// User is a registered person.
type User struct {
	ID            int64
	GivenNames    string
	LastName      string
	ContactDetail ContactDetail
}

// FullName joins given names and last name with a single space.
func (u User) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(u.GivenNames) + " " + strings.TrimSpace(u.LastName))
}

// UserFilter narrows a search. Blank fields are ignored; non-blank fields are
// matched as case-insensitive substrings.
type UserFilter struct {
	GivenNames string
	LastName   string
}

// IsEmpty reports whether the filter matches every user.
func (f UserFilter) IsEmpty() bool {
	return strings.TrimSpace(f.GivenNames) == "" && strings.TrimSpace(f.LastName) == ""
}

// Match reports whether u satisfies the filter.
func (f UserFilter) Match(u User) bool {
	if g := strings.TrimSpace(f.GivenNames); g != "" && !containsFold(u.GivenNames, g) {
		return false
	}
	if l := strings.TrimSpace(f.LastName); l != "" && !containsFold(u.LastName, l) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// UserPage is one page of users together with the total they were cut from.
type UserPage struct {
	Users []User
	Total int64
}
