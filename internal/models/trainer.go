package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AvailabilitySlot struct {
	Day       string `bson:"day" json:"day"` // 'monday', 'tuesday', ...
	StartTime string `bson:"start_time" json:"start_time"`
	EndTime   string `bson:"end_time" json:"end_time"`
}

type Trainer struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         string             `bson:"user_id,omitempty" json:"user_id,omitempty"` // auth user link
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	Phone          string             `bson:"phone" json:"phone"`
	Specialization string             `bson:"specialization" json:"specialization"`
	Bio            string             `bson:"bio" json:"bio"`
	HourlyRate     float64            `bson:"hourly_rate" json:"hourly_rate"`
	Availability   []AvailabilitySlot `bson:"availability" json:"availability"`
	IsActive       bool               `bson:"is_active" json:"is_active"`
	JoinDate       time.Time          `bson:"join_date" json:"join_date"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

const TrainerEntity = "trainer"

var WeekdayMap = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

func IsValidWeekday(day string) bool {
	return WeekdayMap[day]
}

func (t *Trainer) Validate() error {
	if t.Name == "" {
		return errors.New("trainer name is required")
	}
	if t.HourlyRate <= 0 {
		return errors.New("hourly rate must be positive")
	}
	for _, slot := range t.Availability {
		if !IsValidWeekday(slot.Day) {
			return errors.New("invalid availability day: " + slot.Day)
		}
	}
	return nil
}
