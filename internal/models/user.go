package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a social-identity-linked account. Fields are display-only;
// nothing in the draw core depends on them beyond the wallet association.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Handle        string             `bson:"handle" json:"handle"`
	DisplayName   string             `bson:"displayName" json:"displayName"`
	AvatarURL     string             `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	WalletAddress string             `bson:"walletAddress" json:"walletAddress"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AdminUser represents an operator account for the admin dashboard
type AdminUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Role         string             `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// LinkWalletRequest is the body for POST /auth/wallet
type LinkWalletRequest struct {
	WalletAddress string `json:"walletAddress" binding:"required"`
	Handle        string `json:"handle"`
	DisplayName   string `json:"displayName"`
	AvatarURL     string `json:"avatarUrl"`
}

// AdminLoginRequest is the body for POST /admin/login
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
