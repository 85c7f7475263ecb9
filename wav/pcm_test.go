package wav

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSample(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected int16
	}{
		{"zero", 0, 0},
		{"full_scale", 1, 32767},
		{"negative_full_scale", -1, -32767},
		{"tenth", 0.1, 3277},
		{"two_tenths", 0.2, 6553},
		{"three_tenths", 0.3, 9830},
		{"four_tenths", 0.4, 13107},
		{"saturates_high", 2, math.MaxInt16},
		{"saturates_low", -2, math.MinInt16},
		{"nan", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EncodeSample(tt.in))
		})
	}
}

func TestAppendPCM16LittleEndian(t *testing.T) {
	out := AppendPCM16([]byte{0xff}, []float64{0.1, -0.1})
	require.Len(t, out, 5)
	assert.Equal(t, byte(0xff), out[0])
	assert.Equal(t, int16(3277), int16(binary.LittleEndian.Uint16(out[1:3])))
	assert.Equal(t, int16(-3277), int16(binary.LittleEndian.Uint16(out[3:5])))
}

func TestDecodeSample(t *testing.T) {
	assert.InDelta(t, 1.0, DecodeSample(32767), 1e-12)
	assert.InDelta(t, 0.1, DecodeSample(EncodeSample(0.1)), 1.0/32767)
}
