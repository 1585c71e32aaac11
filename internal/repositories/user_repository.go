package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/kvinchris/GymManagement/internal/models"
)

type UserRepository struct {
	Users *mongo.Collection
}

func NewUserRepository(users *mongo.Collection) *UserRepository {
	return &UserRepository{Users: users}
}

func (r *UserRepository) Create(ctx context.Context, email, password string, role models.UserRole) (primitive.ObjectID, error) {
	if email == "" {
		return primitive.NilObjectID, validationErr(errors.New("email is required"))
	}
	if len(password) < 8 {
		return primitive.NilObjectID, validationErr(errors.New("password must be at least 8 characters"))
	}
	if !models.IsValidUserRole(string(role)) {
		return primitive.NilObjectID, validationErr(errors.New("invalid role: " + string(role)))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if _, err := r.Users.InsertOne(ctx, user); err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert user: %w", err)
	}
	return user.ID, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.Users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFoundErr(models.UserEntity)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.Users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFoundErr(models.UserEntity)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// CheckPassword compares a candidate password against the stored hash.
func (r *UserRepository) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) == nil
}

// EnsureAdmin creates the bootstrap admin account when no admin user
// exists yet. No-op when email or password is unset.
func (r *UserRepository) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	count, err := r.Users.CountDocuments(ctx, bson.M{"role": models.RoleAdmin})
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err = r.Create(ctx, email, password, models.RoleAdmin)
	return err
}
