package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchOptions_Matches(t *testing.T) {
	task := &Task{Kind: "D", Description: "Return Library book", Done: false, Priority: 2}
	str := func(s string) *string { return &s }
	boolean := func(b bool) *bool { return &b }
	num := func(n int) *int { return &n }

	tests := []struct {
		name string
		opts SearchOptions
		want bool
	}{
		{"no filters", SearchOptions{}, true},
		{"keyword ignores case", SearchOptions{Keyword: str("library")}, true},
		{"empty keyword matches", SearchOptions{Keyword: str("")}, true},
		{"keyword miss", SearchOptions{Keyword: str("gym")}, false},
		{"kind", SearchOptions{Kind: str("D")}, true},
		{"other kind", SearchOptions{Kind: str("E")}, false},
		{"pending", SearchOptions{Done: boolean(false)}, true},
		{"done", SearchOptions{Done: boolean(true)}, false},
		{"priority floor met", SearchOptions{MinPriority: num(2)}, true},
		{"priority floor missed", SearchOptions{MinPriority: num(3)}, false},
		{"combined", SearchOptions{Keyword: str("book"), Kind: str("D"), Done: boolean(false)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.Matches(task))
		})
	}
}
