package ctf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterval(t *testing.T) {
	assert.Equal(t, 4, IntervalM15.NHour())
	assert.Equal(t, 0.25, IntervalM15.Hours())
	assert.Equal(t, 1.0, IntervalH1.Hours())
	assert.Equal(t, 6, IntervalM10.NHour())
	assert.Panics(t, func() { Interval("7m").NHour() })
}

func TestParseInterval(t *testing.T) {
	for in, want := range map[string]Interval{
		"15m": IntervalM15,
		"1H":  IntervalH1,
		"60":  IntervalH1,
		"30":  IntervalM30,
		"20m": IntervalM20,
		" 10": IntervalM10,
	} {
		got, err := ParseInterval(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "7m", "2h", "abc"} {
		_, err := ParseInterval(in)
		assert.Error(t, err, in)
	}
}
