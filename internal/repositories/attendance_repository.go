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

// AttendanceRepository owns the attendance collection and reads the
// members collection to backfill display fields at check-in time.
type AttendanceRepository struct {
	Attendance *mongo.Collection
	Members    *mongo.Collection
}

func NewAttendanceRepository(attendance, members *mongo.Collection) *AttendanceRepository {
	return &AttendanceRepository{Attendance: attendance, Members: members}
}

type CheckInInput struct {
	MemberID   primitive.ObjectID
	MemberName string
	MemberCode string
	ClassID    *primitive.ObjectID
	Date       time.Time // zero value means now
	Method     models.CheckInMethod
	Notes      string
}

// Record writes a new attendance document. When the display fields are
// absent the member is looked up to backfill them; that lookup is
// best-effort: its failure never blocks the check-in.
func (r *AttendanceRepository) Record(ctx context.Context, in CheckInInput) (primitive.ObjectID, error) {
	if in.MemberID.IsZero() {
		return primitive.NilObjectID, validationErr(errors.New("member reference is required"))
	}
	if !models.IsValidCheckInMethod(string(in.Method)) {
		return primitive.NilObjectID, validationErr(errors.New("invalid check-in method: " + string(in.Method)))
	}

	if in.MemberName == "" {
		var member models.Member
		if err := r.Members.FindOne(ctx, bson.M{"_id": in.MemberID}).Decode(&member); err == nil {
			in.MemberName = member.Name
			in.MemberCode = member.MemberCode
		}
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}

	record := models.Attendance{
		ID:          primitive.NewObjectID(),
		MemberID:    in.MemberID,
		MemberName:  in.MemberName,
		MemberCode:  in.MemberCode,
		ClassID:     in.ClassID,
		Date:        models.StartOfDay(date),
		CheckInTime: now,
		Method:      in.Method,
		Notes:       in.Notes,
		CreatedAt:   now,
	}

	if _, err := r.Attendance.InsertOne(ctx, record); err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert attendance: %w", err)
	}
	return record.ID, nil
}

// Checkout stamps the check-out time on an open attendance record.
// A record that is already checked out is treated as not found.
func (r *AttendanceRepository) Checkout(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.Attendance.UpdateOne(ctx,
		bson.M{"_id": id, "check_out_time": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"check_out_time": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("attendance checkout: %w", err)
	}
	if res.MatchedCount == 0 {
		return notFoundErr(models.AttendanceEntity)
	}
	return nil
}

func (r *AttendanceRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Attendance, error) {
	var record models.Attendance
	err := r.Attendance.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFoundErr(models.AttendanceEntity)
	}
	if err != nil {
		return nil, fmt.Errorf("get attendance: %w", err)
	}
	return &record, nil
}

func (r *AttendanceRepository) ByMember(ctx context.Context, memberID primitive.ObjectID) ([]models.Attendance, error) {
	cursor, err := r.Attendance.Find(ctx,
		bson.M{"member_id": memberID},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list member attendance: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.Attendance
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode attendance: %w", err)
	}
	return records, nil
}

// ForDay returns all check-ins whose day bucket falls on the given
// calendar date, newest first.
func (r *AttendanceRepository) ForDay(ctx context.Context, day time.Time) ([]models.Attendance, error) {
	cursor, err := r.Attendance.Find(ctx,
		bson.M{"date": bson.M{
			"$gte": models.StartOfDay(day),
			"$lte": models.EndOfDay(day),
		}},
		options.Find().SetSort(bson.D{{Key: "check_in_time", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list daily attendance: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.Attendance
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode attendance: %w", err)
	}
	return records, nil
}
