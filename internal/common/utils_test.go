package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasAny(t *testing.T) {
	assert.True(t, HasAny("Rain, Partially cloudy", "rain"))
	assert.True(t, HasAny("Thunderstorm", "snow", "THUNDER"))
	assert.False(t, HasAny("Clear", "rain", "snow"))
	assert.False(t, HasAny("anything"))
}

func TestFormatCoord(t *testing.T) {
	tests := map[float64]string{
		-90:      "-90",
		180:      "180",
		41.8781:  "41.8781",
		0:        "0",
		-0.00015: "-0.00015",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatCoord(in))
	}
}

func TestJoinNonEmpty(t *testing.T) {
	assert.Equal(t, "Chicago, Illinois, USA", JoinNonEmpty(", ", "Chicago", " Illinois ", "USA"))
	assert.Equal(t, "Paris, France", JoinNonEmpty(", ", "Paris", "", "France"))
	assert.Equal(t, "", JoinNonEmpty(", ", "", " "))
}
