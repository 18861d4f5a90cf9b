package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleOwner = "owner"
	RoleAgent = "agent"
	RoleUser  = "user"
)

const (
	LanguageID = "id"
	LanguageEN = "en"
)

// User is the backend's identity record. The front end keeps a read-mostly copy
// inside the Session.
type User struct {
	ID              int64      `json:"id" bson:"id"`
	Name            string     `json:"name" bson:"name"`
	Email           string     `json:"email" bson:"email"`
	Phone           string     `json:"phone" bson:"phone"`
	Role            string     `json:"role" bson:"role"`
	ProfilePhoto    string     `json:"profile_photo,omitempty" bson:"profile_photo,omitempty"`
	ProfilePhotoURL *string    `json:"profile_photo_url,omitempty" bson:"profile_photo_url,omitempty"`
	Language        string     `json:"language" bson:"language"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty" bson:"email_verified_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" bson:"updated_at"`
}

// AuthPayload is the data block returned by login and register.
type AuthPayload struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember,omitempty"`
}

type RegisterInput struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Role                 string `json:"role,omitempty"`
	Language             string `json:"language,omitempty"`
}

// ProfileUpdate carries a partial user; nil fields are left untouched upstream.
type ProfileUpdate struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Language *string `json:"language,omitempty"`
}

type PasswordChange struct {
	CurrentPassword      string `json:"current_password"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}
