package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannels(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{6, 2},
		{8, 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Channels(tt.in), "channels %d", tt.in)
	}
}
