// Package event holds the message vocabulary shared between publishers and
// consumers of the notification lanes.
package event

import "time"

// Lane topics. Each priority gets its own durable destination so high
// priority traffic is never queued behind low priority traffic.
const (
	LaneHighDestination   string = "notifications.high"
	LaneMediumDestination string = "notifications.medium"
	LaneLowDestination    string = "notifications.low"
)

// Consumer names per lane, used for Kafka groups, NATS queue groups,
// NSQ channels and Pub/Sub subscriptions.
const (
	LaneHighConsumer   string = "notifications_high_worker"
	LaneMediumConsumer string = "notifications_medium_worker"
	LaneLowConsumer    string = "notifications_low_worker"
)

// Patterns identify the event kind inside a lane. They travel in the
// message header so consumers can dispatch without decoding the body.
const (
	PatternNotificationPending  string = "notification.pending"
	PatternNotificationSent     string = "notification.sent"
	PatternNotificationPartial  string = "notification.partial"
	PatternNotificationFailed   string = "notification.failed"
	PatternNotificationCanceled string = "notification.canceled"
)

// HeaderPattern is the message header key carrying the pattern.
const HeaderPattern string = "pattern"

// NotificationPendingMessage asks a delivery worker to fan a notification
// out to its eligible channels.
type NotificationPendingMessage struct {
	NotificationID string `json:"notificationId"`
	UserID         string `json:"userId"`
}

// NotificationOutcomeMessage reports a terminal state transition.
type NotificationOutcomeMessage struct {
	NotificationID string    `json:"notificationId"`
	UserID         string    `json:"userId,omitempty"`
	Status         string    `json:"status"`
	OccurredAt     time.Time `json:"occurredAt"`
}
