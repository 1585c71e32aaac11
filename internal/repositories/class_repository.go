package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kvinchris/GymManagement/internal/models"
)

// ClassRepository owns the classes collection and reads the trainers
// collection to resolve the trainer reference on create.
type ClassRepository struct {
	Classes  *mongo.Collection
	Trainers *mongo.Collection
}

func NewClassRepository(classes, trainers *mongo.Collection) *ClassRepository {
	return &ClassRepository{Classes: classes, Trainers: trainers}
}

func (r *ClassRepository) List(ctx context.Context) ([]models.TrainerClass, error) {
	cursor, err := r.Classes.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	defer cursor.Close(ctx)

	var classes []models.TrainerClass
	if err = cursor.All(ctx, &classes); err != nil {
		return nil, fmt.Errorf("decode classes: %w", err)
	}
	return classes, nil
}

func (r *ClassRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.TrainerClass, error) {
	var class models.TrainerClass
	err := r.Classes.FindOne(ctx, bson.M{"_id": id}).Decode(&class)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFoundErr(models.ClassEntity)
	}
	if err != nil {
		return nil, fmt.Errorf("get class: %w", err)
	}
	return &class, nil
}

func (r *ClassRepository) ByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]models.TrainerClass, error) {
	cursor, err := r.Classes.Find(ctx, bson.M{"trainer_id": trainerID})
	if err != nil {
		return nil, fmt.Errorf("list classes by trainer: %w", err)
	}
	defer cursor.Close(ctx)

	var classes []models.TrainerClass
	if err = cursor.All(ctx, &classes); err != nil {
		return nil, fmt.Errorf("decode classes: %w", err)
	}
	return classes, nil
}

// UpcomingFrom returns classes on or after the reference instant,
// ordered by date ascending. limit <= 0 means no limit.
func (r *ClassRepository) UpcomingFrom(ctx context.Context, from time.Time, limit int64) ([]models.TrainerClass, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.Classes.Find(ctx, bson.M{"date": bson.M{"$gte": models.StartOfDay(from)}}, opts)
	if err != nil {
		return nil, fmt.Errorf("query upcoming classes: %w", err)
	}
	defer cursor.Close(ctx)

	var classes []models.TrainerClass
	if err = cursor.All(ctx, &classes); err != nil {
		return nil, fmt.Errorf("decode classes: %w", err)
	}
	return classes, nil
}

func (r *ClassRepository) Create(ctx context.Context, class models.TrainerClass) (primitive.ObjectID, error) {
	err := r.Trainers.FindOne(ctx, bson.M{"_id": class.TrainerID}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return primitive.NilObjectID, notFoundErr(models.TrainerEntity)
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("resolve trainer: %w", err)
	}

	class.Date = models.StartOfDay(class.Date)
	if err := class.Validate(); err != nil {
		return primitive.NilObjectID, validationErr(err)
	}

	class.ID = primitive.NewObjectID()
	class.CreatedAt = time.Now()
	class.UpdatedAt = time.Now()

	if _, err := r.Classes.InsertOne(ctx, class); err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert class: %w", err)
	}
	return class.ID, nil
}

type ClassDetailsUpdate struct {
	ClassName     *string
	Description   *string
	Date          *time.Time
	StartTime     *string
	EndTime       *string
	Capacity      *int
	Location      *string
	Price         *float64
	IsRecurring   *bool
	RecurringDays *[]string
}

func (u ClassDetailsUpdate) set() (bson.M, error) {
	set := bson.M{}
	if u.ClassName != nil {
		if *u.ClassName == "" {
			return nil, errors.New("class name must not be empty")
		}
		set["class_name"] = *u.ClassName
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Date != nil {
		set["date"] = models.StartOfDay(*u.Date)
	}
	if u.StartTime != nil {
		set["start_time"] = *u.StartTime
	}
	if u.EndTime != nil {
		set["end_time"] = *u.EndTime
	}
	if u.Capacity != nil {
		if *u.Capacity <= 0 {
			return nil, errors.New("capacity must be positive")
		}
		set["capacity"] = *u.Capacity
	}
	if u.Location != nil {
		set["location"] = *u.Location
	}
	if u.Price != nil {
		if *u.Price < 0 {
			return nil, errors.New("class price must not be negative")
		}
		set["price"] = *u.Price
	}
	if u.IsRecurring != nil {
		if *u.IsRecurring && (u.RecurringDays == nil || len(*u.RecurringDays) == 0) {
			return nil, errors.New("recurring classes must list at least one recurring day")
		}
		set["is_recurring"] = *u.IsRecurring
	}
	if u.RecurringDays != nil {
		for _, day := range *u.RecurringDays {
			if !models.IsValidWeekday(day) {
				return nil, errors.New("invalid recurring day: " + day)
			}
		}
		set["recurring_days"] = *u.RecurringDays
	}
	return set, nil
}

func (r *ClassRepository) UpdateDetails(ctx context.Context, id primitive.ObjectID, update ClassDetailsUpdate) error {
	set, err := update.set()
	if err != nil {
		return validationErr(err)
	}
	if len(set) == 0 {
		return validationErr(errors.New("no update fields provided"))
	}
	set["updated_at"] = time.Now()

	res, err := r.Classes.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update class: %w", err)
	}
	if res.MatchedCount == 0 {
		return notFoundErr(models.ClassEntity)
	}
	return nil
}

// SetEnrolled writes a new enrolled count after a bounds check against
// the stored capacity. The read and write are separate operations;
// concurrent enrollments can still race. Accepted limitation.
func (r *ClassRepository) SetEnrolled(ctx context.Context, id primitive.ObjectID, enrolled int) error {
	class, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if enrolled < 0 || enrolled > class.Capacity {
		return validationErr(fmt.Errorf("enrolled count %d out of range [0, %d]", enrolled, class.Capacity))
	}

	res, err := r.Classes.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"enrolled":   enrolled,
		"updated_at": time.Now(),
	}})
	if err != nil {
		return fmt.Errorf("update enrollment: %w", err)
	}
	if res.MatchedCount == 0 {
		return notFoundErr(models.ClassEntity)
	}
	return nil
}

func (r *ClassRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.Classes.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete class: %w", err)
	}
	return nil
}

func (r *ClassRepository) CountUpcoming(ctx context.Context, from time.Time) (int64, error) {
	count, err := r.Classes.CountDocuments(ctx, bson.M{"date": bson.M{"$gte": models.StartOfDay(from)}})
	if err != nil {
		return 0, fmt.Errorf("count upcoming classes: %w", err)
	}
	return count, nil
}
