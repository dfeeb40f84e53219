package model

import (
	"time"
)

type User struct {
	ID               string    `bson:"_id,omitempty" json:"id"`
	Email            string    `bson:"email" json:"email"`
	Password         string    `bson:"password" json:"-"`
	TwoFactorSecret  string    `bson:"two_factor_secret,omitempty" json:"-"`
	TwoFactorEnabled bool      `bson:"two_factor_enabled" json:"two_factor_enabled"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
}

type LoginRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required"`
	TwoFactorCode string `json:"two_factor_code,omitempty"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,password"`
}
