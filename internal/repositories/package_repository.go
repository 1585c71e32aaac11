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

type PackageRepository struct {
	Packages *mongo.Collection
}

func NewPackageRepository(packages *mongo.Collection) *PackageRepository {
	return &PackageRepository{Packages: packages}
}

func (r *PackageRepository) List(ctx context.Context) ([]models.Package, error) {
	cursor, err := r.Packages.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer cursor.Close(ctx)

	var packages []models.Package
	if err = cursor.All(ctx, &packages); err != nil {
		return nil, fmt.Errorf("decode packages: %w", err)
	}
	return packages, nil
}

func (r *PackageRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Package, error) {
	var pkg models.Package
	err := r.Packages.FindOne(ctx, bson.M{"_id": id}).Decode(&pkg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFoundErr(models.PackageEntity)
	}
	if err != nil {
		return nil, fmt.Errorf("get package: %w", err)
	}
	return &pkg, nil
}

func (r *PackageRepository) Create(ctx context.Context, pkg models.Package) (primitive.ObjectID, error) {
	if err := pkg.Validate(); err != nil {
		return primitive.NilObjectID, validationErr(err)
	}

	pkg.ID = primitive.NewObjectID()
	pkg.CreatedAt = time.Now()
	pkg.UpdatedAt = time.Now()

	if _, err := r.Packages.InsertOne(ctx, pkg); err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert package: %w", err)
	}
	return pkg.ID, nil
}

type PackageUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Duration    *int
	Features    *[]string
}

func (u PackageUpdate) set() (bson.M, error) {
	set := bson.M{}
	if u.Name != nil {
		if *u.Name == "" {
			return nil, errors.New("package name must not be empty")
		}
		set["name"] = *u.Name
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Price != nil {
		if *u.Price < 0 {
			return nil, errors.New("package price must not be negative")
		}
		set["price"] = *u.Price
	}
	if u.Duration != nil {
		if *u.Duration <= 0 {
			return nil, errors.New("package duration must be a positive number of days")
		}
		set["duration"] = *u.Duration
	}
	if u.Features != nil {
		set["features"] = *u.Features
	}
	return set, nil
}

func (r *PackageRepository) Update(ctx context.Context, id primitive.ObjectID, update PackageUpdate) error {
	set, err := update.set()
	if err != nil {
		return validationErr(err)
	}
	if len(set) == 0 {
		return validationErr(errors.New("no update fields provided"))
	}
	set["updated_at"] = time.Now()

	res, err := r.Packages.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update package: %w", err)
	}
	if res.MatchedCount == 0 {
		return notFoundErr(models.PackageEntity)
	}
	return nil
}

// Delete removes the package document. Members holding a denormalized
// copy of the package name and a derived expiry date keep them.
func (r *PackageRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.Packages.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete package: %w", err)
	}
	return nil
}
