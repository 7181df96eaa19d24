package entity

import (
	"time"

	"github.com/heralddev/herald/internal/pkg/valueobject"
)

type Notification struct {
	ID           string
	UserID       string
	ExternalID   string
	TemplateName string
	Content      valueobject.JSONMap
	Priority     Priority
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NotificationDetail joins a notification with its recipient contact info.
type NotificationDetail struct {
	Notification
	UserEmail string
}

type CreateNotification struct {
	ID           string
	UserID       string
	ExternalID   string
	TemplateName string
	Content      valueobject.JSONMap
	Priority     Priority
}

type DeliveryLog struct {
	ID             int64
	NotificationID string
	Channel        Channel
	Status         DeliveryStatus
	ErrorMessage   string
	SentAt         time.Time
}

// Recipient carries the contact points and channel preferences needed to
// fan a notification out.
type Recipient struct {
	UserID      string
	Email       string
	PhoneNumber string
	PushToken   string
	AllowEmail  bool
	AllowSMS    bool
	AllowPush   bool
}

// EligibleChannels returns the channels a delivery may use: the preference
// flag must be on and the matching contact point must be present.
func (r Recipient) EligibleChannels() []Channel {
	var chs []Channel
	if r.AllowEmail && r.Email != "" {
		chs = append(chs, ChannelEmail)
	}
	if r.AllowSMS && r.PhoneNumber != "" {
		chs = append(chs, ChannelSMS)
	}
	if r.AllowPush && r.PushToken != "" {
		chs = append(chs, ChannelPush)
	}
	return chs
}
