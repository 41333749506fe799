package rooms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoveredLength(t *testing.T) {
	tests := []struct {
		name     string
		spans    []span
		expected float64
	}{
		{"empty", nil, 0},
		{"single", []span{{0.1, 0.4}}, 0.3},
		{"disjoint", []span{{0, 0.2}, {0.5, 0.7}}, 0.4},
		{"overlap", []span{{0, 0.5}, {0.3, 0.8}}, 0.8},
		{"nested", []span{{0, 1}, {0.2, 0.3}}, 1},
		{"unsorted reversed", []span{{0.9, 0.6}, {0, 0.1}}, 0.4},
		{"touching", []span{{0, 0.5}, {0.5, 1}}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, coveredLength(tt.spans), 1e-9)
		})
	}
}
