package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecipientEligibleChannels(t *testing.T) {
	full := Recipient{
		Email:       "jo@example.com",
		PhoneNumber: "+15550001111",
		PushToken:   "tok-1",
		AllowEmail:  true,
		AllowSMS:    true,
		AllowPush:   true,
	}

	t.Run("all flags and contacts present", func(t *testing.T) {
		assert.Equal(t, []Channel{ChannelEmail, ChannelSMS, ChannelPush}, full.EligibleChannels())
	})

	t.Run("opt out removes the channel", func(t *testing.T) {
		r := full
		r.AllowSMS = false
		assert.Equal(t, []Channel{ChannelEmail, ChannelPush}, r.EligibleChannels())
	})

	t.Run("missing contact point removes the channel", func(t *testing.T) {
		r := full
		r.PushToken = ""
		assert.Equal(t, []Channel{ChannelEmail, ChannelSMS}, r.EligibleChannels())
	})

	t.Run("nothing usable", func(t *testing.T) {
		assert.Empty(t, Recipient{AllowEmail: true, AllowSMS: true, AllowPush: true}.EligibleChannels())
	})
}

func TestChannelFromString(t *testing.T) {
	assert.Equal(t, ChannelEmail, ChannelFromString("Email"))
	assert.Equal(t, ChannelSMS, ChannelFromString(" sms "))
	assert.Equal(t, ChannelPush, ChannelFromString("push"))
	assert.Equal(t, ChannelUnknown, ChannelFromString("fax"))
}

func TestPriorityFromString(t *testing.T) {
	assert.Equal(t, PriorityHigh, PriorityFromString("HIGH"))
	assert.Equal(t, PriorityMedium, PriorityFromString("medium"))
	assert.Equal(t, PriorityLow, PriorityFromString("low"))
	assert.Equal(t, PriorityUnknown, PriorityFromString("urgent"))
}
