package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTemplateName(t *testing.T) {
	tests := map[string]string{
		"Order Shipped":       "order-shipped",
		"  order   shipped  ": "order-shipped",
		"ORDER\tSHIPPED":      "order-shipped",
		"welcome":             "welcome",
		"":                    "",
		"   ":                 "",
	}
	for raw, want := range tests {
		assert.Equal(t, want, NormalizeTemplateName(raw), "raw=%q", raw)
	}
}

func TestValidTemplateName(t *testing.T) {
	valid := []string{"welcome", "order-shipped", "promo-2024", "a"}
	for _, name := range valid {
		assert.True(t, ValidTemplateName(name), name)
	}

	invalid := []string{"", "Order-Shipped", "order shipped", "-order", "order-", "order--shipped", "örder"}
	for _, name := range invalid {
		assert.False(t, ValidTemplateName(name), name)
	}
}
