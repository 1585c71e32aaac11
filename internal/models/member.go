package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MembershipState string

const (
	MembershipActive       MembershipState = "active"
	MembershipExpiringSoon MembershipState = "expiring"
	MembershipExpired      MembershipState = "expired"

	MemberEntity = "member"

	// ExpiringSoonDays is the default window for the "expiring" state.
	ExpiringSoonDays = 7
)

type Member struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberCode  string             `bson:"member_code" json:"member_code"` // human-facing, e.g. GM-3F2A91
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Phone       string             `bson:"phone" json:"phone"`
	Address     string             `bson:"address" json:"address"`
	PackageID   primitive.ObjectID `bson:"package_id" json:"package_id"`
	PackageName string             `bson:"package_name" json:"package_name"` // denormalized at write time
	StartDate   time.Time          `bson:"start_date" json:"start_date"`
	ExpiryDate  time.Time          `bson:"expiry_date" json:"expiry_date"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

func (m *Member) Validate() error {
	if m.Name == "" {
		return errors.New("member name is required")
	}
	if m.MemberCode == "" {
		return errors.New("member code is required")
	}
	if m.PackageID.IsZero() {
		return errors.New("package reference is required")
	}
	if m.StartDate.IsZero() {
		return errors.New("start date is required")
	}
	return nil
}

// ExpiryDate computes the membership end from the package duration.
func ExpiryDate(start time.Time, durationDays int) time.Time {
	return start.AddDate(0, 0, durationDays)
}

// DaysLeft counts whole days until expiry, rounding partial days up.
// Negative once the expiry is in the past.
func DaysLeft(expiry, now time.Time) int {
	d := expiry.Sub(now)
	days := int(d / (24 * time.Hour))
	if d > 0 && d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// MembershipStatus derives the display state from the expiry date.
// soonDays is the width of the "expiring" window; values <= 0 fall
// back to ExpiringSoonDays.
func MembershipStatus(expiry, now time.Time, soonDays int) MembershipState {
	if soonDays <= 0 {
		soonDays = ExpiringSoonDays
	}
	if expiry.Before(now) {
		return MembershipExpired
	}
	if DaysLeft(expiry, now) <= soonDays {
		return MembershipExpiringSoon
	}
	return MembershipActive
}

// StartOfDay truncates a timestamp to UTC midnight. Calendar-date
// fields (start/expiry dates, class dates, attendance day buckets)
// are stored in this normalized form.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Nanosecond)
}
