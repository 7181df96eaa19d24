package entity

import (
	"strings"
)

type Channel int16

const (
	ChannelUnknown Channel = 0
	ChannelEmail   Channel = 1
	ChannelSMS     Channel = 2
	ChannelPush    Channel = 3
)

func ChannelFromString(raw string) Channel {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "email":
		return ChannelEmail
	case "sms":
		return ChannelSMS
	case "push":
		return ChannelPush
	default:
		return ChannelUnknown
	}
}

func (c Channel) String() string {
	switch c {
	case ChannelEmail:
		return "email"
	case ChannelSMS:
		return "sms"
	case ChannelPush:
		return "push"
	default:
		return "unknown"
	}
}

type DeliveryStatus int16

const (
	DeliveryUnknown DeliveryStatus = 0
	DeliverySuccess DeliveryStatus = 1
	DeliveryFailed  DeliveryStatus = 2
)

func (s DeliveryStatus) String() string {
	switch s {
	case DeliverySuccess:
		return "success"
	case DeliveryFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type Priority int16

const (
	PriorityUnknown Priority = 0
	PriorityHigh    Priority = 1
	PriorityMedium  Priority = 2
	PriorityLow     Priority = 3
)

func PriorityFromString(raw string) Priority {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "high":
		return PriorityHigh
	case "medium":
		return PriorityMedium
	case "low":
		return PriorityLow
	default:
		return PriorityUnknown
	}
}

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return "unknown"
	}
}
