package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	UserStatePending  = "pending"
	UserStateVerified = "verified"
)

// User is an account document. The OTP fields hold the currently valid
// 6-digit codes; they are rotated every time a new verification or reset
// flow starts, and again once consumed.
type User struct {
	ID              primitive.ObjectID `bson:"_id" json:"-"`
	UserID          string             `bson:"user_id" json:"user_id"`
	Name            string             `bson:"name" json:"name"`
	Email           string             `bson:"email" json:"email"`
	PasswordHash    string             `bson:"password_hash" json:"-"`
	RegistrationOTP string             `bson:"registration_otp" json:"-"`
	ResetOTP        string             `bson:"reset_otp" json:"-"`
	State           string             `bson:"state" json:"state"`
	JoinedAt        time.Time          `bson:"joined_at" json:"joined_at"`
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type EditNameRequest struct {
	Name string `json:"name" validate:"required,min=4"`
}
