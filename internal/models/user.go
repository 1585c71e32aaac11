package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTrainer UserRole = "trainer"

	UserEntity = "user"
)

var userRoleMap = map[string]bool{
	string(RoleAdmin):   true,
	string(RoleTrainer): true,
}

func IsValidUserRole(role string) bool {
	return userRoleMap[role]
}

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash []byte             `bson:"password_hash" json:"-"`
	Role         UserRole           `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
