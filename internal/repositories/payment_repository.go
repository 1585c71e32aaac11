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

// PaymentRepository owns the payments collection. Member and package
// references are resolved on record so a payment never points at an
// entity that did not exist at write time.
type PaymentRepository struct {
	Payments *mongo.Collection
	Members  *mongo.Collection
	Packages *mongo.Collection
}

func NewPaymentRepository(payments, members, packages *mongo.Collection) *PaymentRepository {
	return &PaymentRepository{Payments: payments, Members: members, Packages: packages}
}

func (r *PaymentRepository) Record(ctx context.Context, payment models.Payment) (primitive.ObjectID, error) {
	if payment.Status == "" {
		payment.Status = models.PaymentPending
	}
	if err := payment.Validate(); err != nil {
		return primitive.NilObjectID, validationErr(err)
	}

	err := r.Members.FindOne(ctx, bson.M{"_id": payment.MemberID}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return primitive.NilObjectID, notFoundErr(models.MemberEntity)
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("resolve member: %w", err)
	}

	err = r.Packages.FindOne(ctx, bson.M{"_id": payment.PackageID}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return primitive.NilObjectID, notFoundErr(models.PackageEntity)
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("resolve package: %w", err)
	}

	if payment.PaymentDate.IsZero() {
		payment.PaymentDate = time.Now()
	}

	payment.ID = primitive.NewObjectID()
	payment.CreatedAt = time.Now()
	payment.UpdatedAt = time.Now()

	if _, err := r.Payments.InsertOne(ctx, payment); err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert payment: %w", err)
	}
	return payment.ID, nil
}

// UpdateStatus transitions a payment's status. Notes, when non-empty,
// replace the existing notes.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus, notes string) error {
	if !models.IsValidPaymentStatus(string(status)) {
		return validationErr(errors.New("invalid payment status: " + string(status)))
	}

	set := bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}
	if notes != "" {
		set["notes"] = notes
	}

	res, err := r.Payments.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	if res.MatchedCount == 0 {
		return notFoundErr(models.PaymentEntity)
	}
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Payment, error) {
	var payment models.Payment
	err := r.Payments.FindOne(ctx, bson.M{"_id": id}).Decode(&payment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFoundErr(models.PaymentEntity)
	}
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &payment, nil
}

func (r *PaymentRepository) List(ctx context.Context) ([]models.Payment, error) {
	cursor, err := r.Payments.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err = cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}
	return payments, nil
}

func (r *PaymentRepository) ByMember(ctx context.Context, memberID primitive.ObjectID) ([]models.Payment, error) {
	cursor, err := r.Payments.Find(ctx,
		bson.M{"member_id": memberID},
		options.Find().SetSort(bson.D{{Key: "payment_date", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list member payments: %w", err)
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err = cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}
	return payments, nil
}
