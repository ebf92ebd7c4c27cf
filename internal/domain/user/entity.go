package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Status represents user status (matches user_status enum)
type Status string

const (
	StatusActive  Status = "active"
	StatusPaused  Status = "paused"
	StatusBanned  Status = "banned"
	StatusDeleted Status = "deleted"
)

// Gender represents user gender (matches gender enum)
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Default discovery preferences applied when a user has not set any
const (
	DefaultMinAge = 18
	DefaultMaxAge = 99
)

// User is the read model of a profile owned by the external profile
// service. Only the attributes the matching engine consumes are mapped.
type User struct {
	ID              uuid.UUID      `db:"id"`
	Status          Status         `db:"status"`
	Gender          Gender         `db:"gender"`
	BirthDate       time.Time      `db:"birth_date"`
	Interests       pq.StringArray `db:"interests"`
	ProfileComplete bool           `db:"profile_complete"`
	LastActiveAt    time.Time      `db:"last_active_at"`

	// Discovery preferences; zero values mean "not set"
	PrefMinAge       int            `db:"pref_min_age"`
	PrefMaxAge       int            `db:"pref_max_age"`
	PrefInterestedIn pq.StringArray `db:"pref_interested_in"`
}

// IsActive returns true if the user can participate in swiping
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// Age returns the user's age in full years at the given time
func (u *User) Age(now time.Time) int {
	age := now.Year() - u.BirthDate.Year()
	anniversary := u.BirthDate.AddDate(age, 0, 0)
	if anniversary.After(now) {
		age--
	}
	return age
}

// AgeRange returns the user's preferred candidate age range, falling back
// to the open default when unset
func (u *User) AgeRange() (int, int) {
	min, max := u.PrefMinAge, u.PrefMaxAge
	if min <= 0 {
		min = DefaultMinAge
	}
	if max <= 0 {
		max = DefaultMaxAge
	}
	return min, max
}

// WantsGender reports whether the user's gender preference admits the
// given gender. An empty preference list means open to all genders.
func (u *User) WantsGender(g Gender) bool {
	if len(u.PrefInterestedIn) == 0 {
		return true
	}
	for _, want := range u.PrefInterestedIn {
		if strings.EqualFold(want, string(g)) {
			return true
		}
	}
	return false
}
