package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"

	PaymentEntity = "payment"
)

var paymentStatusMap = map[string]bool{
	string(PaymentPending):   true,
	string(PaymentCompleted): true,
	string(PaymentFailed):    true,
	string(PaymentRefunded):  true,
}

func IsValidPaymentStatus(status string) bool {
	return paymentStatusMap[status]
}

type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID      primitive.ObjectID `bson:"member_id" json:"member_id"`
	PackageID     primitive.ObjectID `bson:"package_id" json:"package_id"`
	Amount        float64            `bson:"amount" json:"amount"`
	PaymentDate   time.Time          `bson:"payment_date" json:"payment_date"`
	Method        string             `bson:"payment_method" json:"payment_method"`
	TransactionID string             `bson:"transaction_id,omitempty" json:"transaction_id,omitempty"`
	Status        PaymentStatus      `bson:"status" json:"status"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

func (p *Payment) Validate() error {
	if p.MemberID.IsZero() {
		return errors.New("member reference is required")
	}
	if p.PackageID.IsZero() {
		return errors.New("package reference is required")
	}
	if p.Amount < 0 {
		return errors.New("payment amount must not be negative")
	}
	if p.Method == "" {
		return errors.New("payment method is required")
	}
	if !IsValidPaymentStatus(string(p.Status)) {
		return errors.New("invalid payment status: " + string(p.Status))
	}
	return nil
}
