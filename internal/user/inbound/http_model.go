package inbound

import (
	"net/http"
	"time"
)

type CreateUserRequest struct {
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	PushToken   string `json:"push_token"`
}

type CreateUserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (CreateUserResponse) StatusCode() int { return http.StatusCreated }

type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	PushToken   string    `json:"push_token,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UpdatePreferencesRequest struct {
	AllowEmail bool `json:"allow_email"`
	AllowSMS   bool `json:"allow_sms"`
	AllowPush  bool `json:"allow_push"`
}

type PreferencesResponse struct {
	UserID     string    `json:"user_id"`
	AllowEmail bool      `json:"allow_email"`
	AllowSMS   bool      `json:"allow_sms"`
	AllowPush  bool      `json:"allow_push"`
	UpdatedAt  time.Time `json:"updated_at"`
}
