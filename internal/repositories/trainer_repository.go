package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kvinchris/GymManagement/internal/models"
)

type TrainerRepository struct {
	Trainers *mongo.Collection
}

func NewTrainerRepository(trainers *mongo.Collection) *TrainerRepository {
	return &TrainerRepository{Trainers: trainers}
}

func (r *TrainerRepository) List(ctx context.Context) ([]models.Trainer, error) {
	cursor, err := r.Trainers.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list trainers: %w", err)
	}
	defer cursor.Close(ctx)

	var trainers []models.Trainer
	if err = cursor.All(ctx, &trainers); err != nil {
		return nil, fmt.Errorf("decode trainers: %w", err)
	}
	return trainers, nil
}

func (r *TrainerRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Trainer, error) {
	var trainer models.Trainer
	err := r.Trainers.FindOne(ctx, bson.M{"_id": id}).Decode(&trainer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFoundErr(models.TrainerEntity)
	}
	if err != nil {
		return nil, fmt.Errorf("get trainer: %w", err)
	}
	return &trainer, nil
}

// GetByUserID finds the trainer profile linked to an auth user.
func (r *TrainerRepository) GetByUserID(ctx context.Context, userID string) (*models.Trainer, error) {
	var trainer models.Trainer
	err := r.Trainers.FindOne(ctx, bson.M{"user_id": userID}).Decode(&trainer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFoundErr(models.TrainerEntity)
	}
	if err != nil {
		return nil, fmt.Errorf("get trainer by user id: %w", err)
	}
	return &trainer, nil
}

func (r *TrainerRepository) Create(ctx context.Context, trainer models.Trainer) (primitive.ObjectID, error) {
	if err := trainer.Validate(); err != nil {
		return primitive.NilObjectID, validationErr(err)
	}

	if trainer.JoinDate.IsZero() {
		trainer.JoinDate = models.StartOfDay(time.Now())
	} else {
		trainer.JoinDate = models.StartOfDay(trainer.JoinDate)
	}

	trainer.ID = primitive.NewObjectID()
	trainer.CreatedAt = time.Now()
	trainer.UpdatedAt = time.Now()

	if _, err := r.Trainers.InsertOne(ctx, trainer); err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert trainer: %w", err)
	}
	return trainer.ID, nil
}

type TrainerUpdate struct {
	Name           *string
	Email          *string
	Phone          *string
	Specialization *string
	Bio            *string
	HourlyRate     *float64
	Availability   *[]models.AvailabilitySlot
	IsActive       *bool
}

func (u TrainerUpdate) set() (bson.M, error) {
	set := bson.M{}
	if u.Name != nil {
		if *u.Name == "" {
			return nil, errors.New("trainer name must not be empty")
		}
		set["name"] = *u.Name
	}
	if u.Email != nil {
		set["email"] = *u.Email
	}
	if u.Phone != nil {
		set["phone"] = *u.Phone
	}
	if u.Specialization != nil {
		set["specialization"] = *u.Specialization
	}
	if u.Bio != nil {
		set["bio"] = *u.Bio
	}
	if u.HourlyRate != nil {
		if *u.HourlyRate <= 0 {
			return nil, errors.New("hourly rate must be positive")
		}
		set["hourly_rate"] = *u.HourlyRate
	}
	if u.Availability != nil {
		for _, slot := range *u.Availability {
			if !models.IsValidWeekday(slot.Day) {
				return nil, errors.New("invalid availability day: " + slot.Day)
			}
		}
		set["availability"] = *u.Availability
	}
	if u.IsActive != nil {
		set["is_active"] = *u.IsActive
	}
	return set, nil
}

func (r *TrainerRepository) Update(ctx context.Context, id primitive.ObjectID, update TrainerUpdate) error {
	set, err := update.set()
	if err != nil {
		return validationErr(err)
	}
	if len(set) == 0 {
		return validationErr(errors.New("no update fields provided"))
	}
	set["updated_at"] = time.Now()

	res, err := r.Trainers.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update trainer: %w", err)
	}
	if res.MatchedCount == 0 {
		return notFoundErr(models.TrainerEntity)
	}
	return nil
}

func (r *TrainerRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.Trainers.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"is_active":  false,
		"updated_at": time.Now(),
	}})
	if err != nil {
		return fmt.Errorf("deactivate trainer: %w", err)
	}
	if res.MatchedCount == 0 {
		return notFoundErr(models.TrainerEntity)
	}
	return nil
}

func (r *TrainerRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.Trainers.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete trainer: %w", err)
	}
	return nil
}

func (r *TrainerRepository) CountActive(ctx context.Context) (int64, error) {
	count, err := r.Trainers.CountDocuments(ctx, bson.M{"is_active": true})
	if err != nil {
		return 0, fmt.Errorf("count active trainers: %w", err)
	}
	return count, nil
}
