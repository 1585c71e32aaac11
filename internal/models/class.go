package models

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TrainerClass struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID     primitive.ObjectID `bson:"trainer_id" json:"trainer_id"`
	ClassName     string             `bson:"class_name" json:"class_name"`
	Description   string             `bson:"description" json:"description"`
	Date          time.Time          `bson:"date" json:"date"`
	StartTime     string             `bson:"start_time" json:"start_time"` // '09:00'
	EndTime       string             `bson:"end_time" json:"end_time"`
	Capacity      int                `bson:"capacity" json:"capacity"`
	Enrolled      int                `bson:"enrolled" json:"enrolled"`
	Location      string             `bson:"location" json:"location"`
	Price         float64            `bson:"price" json:"price"`
	IsRecurring   bool               `bson:"is_recurring" json:"is_recurring"`
	RecurringDays []string           `bson:"recurring_days,omitempty" json:"recurring_days,omitempty"`
	CreatedBy     string             `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

const ClassEntity = "class"

func (c *TrainerClass) Validate() error {
	if c.ClassName == "" {
		return errors.New("class name is required")
	}
	if c.TrainerID.IsZero() {
		return errors.New("trainer reference is required")
	}
	if c.Date.IsZero() {
		return errors.New("class date is required")
	}
	if c.Capacity <= 0 {
		return errors.New("capacity must be positive")
	}
	if c.Enrolled < 0 || c.Enrolled > c.Capacity {
		return fmt.Errorf("enrolled count %d out of range [0, %d]", c.Enrolled, c.Capacity)
	}
	if c.Price < 0 {
		return errors.New("class price must not be negative")
	}
	if c.IsRecurring && len(c.RecurringDays) == 0 {
		return errors.New("recurring classes must list at least one recurring day")
	}
	for _, day := range c.RecurringDays {
		if !IsValidWeekday(day) {
			return errors.New("invalid recurring day: " + day)
		}
	}
	return nil
}
