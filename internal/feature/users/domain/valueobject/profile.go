package valueobject

import "strings"

// Profile is the role of a user.
type Profile string

const (
	ProfileUser  Profile = "User"
	ProfileAdmin Profile = "Admin"
)

// ParseProfile maps "Admin" (any case) to ProfileAdmin and everything else to ProfileUser.
func ParseProfile(raw string) Profile {
	if strings.EqualFold(raw, string(ProfileAdmin)) {
		return ProfileAdmin
	}
	return ProfileUser
}

func (p Profile) String() string {
	return string(p)
}

// IsAdmin reports whether p is ProfileAdmin.
func (p Profile) IsAdmin() bool {
	return p == ProfileAdmin
}
