package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kvinchris/GymManagement/internal/models"
)

func validClass() models.TrainerClass {
	return models.TrainerClass{
		TrainerID: primitive.NewObjectID(),
		ClassName: "Morning Yoga",
		Date:      time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "10:00",
		Capacity:  20,
		Enrolled:  5,
		Price:     15,
	}
}

func TestTrainerClassValidate(t *testing.T) {
	t.Run("valid class", func(t *testing.T) {
		c := validClass()
		assert.NoError(t, c.Validate())
	})

	t.Run("missing name", func(t *testing.T) {
		c := validClass()
		c.ClassName = ""
		assert.Error(t, c.Validate())
	})

	t.Run("zero capacity", func(t *testing.T) {
		c := validClass()
		c.Capacity = 0
		assert.Error(t, c.Validate())
	})

	t.Run("enrolled above capacity", func(t *testing.T) {
		c := validClass()
		c.Enrolled = 21
		assert.Error(t, c.Validate())
	})

	t.Run("negative enrolled", func(t *testing.T) {
		c := validClass()
		c.Enrolled = -1
		assert.Error(t, c.Validate())
	})

	t.Run("recurring without days", func(t *testing.T) {
		c := validClass()
		c.IsRecurring = true
		assert.Error(t, c.Validate())
	})

	t.Run("recurring with days", func(t *testing.T) {
		c := validClass()
		c.IsRecurring = true
		c.RecurringDays = []string{"monday", "wednesday"}
		assert.NoError(t, c.Validate())
	})

	t.Run("bad recurring day", func(t *testing.T) {
		c := validClass()
		c.IsRecurring = true
		c.RecurringDays = []string{"someday"}
		assert.Error(t, c.Validate())
	})
}
