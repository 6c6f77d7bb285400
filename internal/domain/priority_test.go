package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in   string
		want Priority
		ok   bool
	}{
		{"high", PriorityHigh, true},
		{"H", PriorityHigh, true},
		{"urgent", PriorityHigh, true},
		{"3", PriorityHigh, true},
		{"med", PriorityMedium, true},
		{"normal", PriorityMedium, true},
		{"2", PriorityMedium, true},
		{"minor", PriorityLow, true},
		{"1", PriorityLow, true},
		{"", PriorityNone, true},
		{"none", PriorityNone, true},
		{"0", PriorityNone, true},
		{"7", PriorityNone, false},
		{"whenever", PriorityNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePriority(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSuggestPriority(t *testing.T) {
	tests := []struct {
		description string
		want        Priority
	}{
		{"URGENT: fix prod", PriorityHigh},
		{"prepare presentation", PriorityHigh},
		{"write weekly report", PriorityMedium},
		{"call mum", PriorityMedium},
		{"maybe learn guitar", PriorityLow},
		{"buy milk", PriorityNone},
		{"", PriorityNone},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.want, SuggestPriority(tt.description))
		})
	}
}

func TestPriority_String(t *testing.T) {
	assert.Equal(t, "HIGH", PriorityHigh.String())
	assert.Equal(t, "MEDIUM", PriorityMedium.String())
	assert.Equal(t, "LOW", PriorityLow.String())
	assert.Equal(t, "NONE", PriorityNone.String())
}
