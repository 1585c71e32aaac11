package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Package struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Duration    int                `bson:"duration" json:"duration"` // days
	Features    []string           `bson:"features" json:"features"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

const PackageEntity = "package"

func (p *Package) Validate() error {
	if p.Name == "" {
		return errors.New("package name is required")
	}
	if p.Price < 0 {
		return errors.New("package price must not be negative")
	}
	if p.Duration <= 0 {
		return errors.New("package duration must be a positive number of days")
	}
	return nil
}
