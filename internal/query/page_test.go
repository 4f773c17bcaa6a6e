package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageClamping(t *testing.T) {
	tests := []struct {
		name      string
		skip      int
		limit     int
		wantSkip  int
		wantLimit int
	}{
		{"defaults", 0, 0, 0, 10},
		{"negative skip", -5, 20, 0, 20},
		{"limit below range", 0, -3, 0, 1},
		{"limit above range", 0, 500, 0, 100},
		{"limit at max", 0, 100, 0, 100},
		{"limit at min", 0, 1, 0, 1},
		{"passthrough", 30, 25, 30, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := NewPage(tt.skip, tt.limit)
			assert.Equal(t, tt.wantSkip, page.Skip)
			assert.Equal(t, tt.wantLimit, page.Limit)
		})
	}
}
