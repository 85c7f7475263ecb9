package wav

import (
	"encoding/binary"
	"math"
)

// MaxValue is the full-scale 16-bit sample magnitude.
const MaxValue = math.MaxInt16

// EncodeSample converts a float sample to 16-bit PCM as round(v × 32767).
// Results beyond the int16 range saturate instead of wrapping, and NaN
// encodes as 0, so an out-of-range input never flips sign on disk.
func EncodeSample(v float64) int16 {
	s := math.Round(v * MaxValue)
	switch {
	case math.IsNaN(s):
		return 0
	case s > math.MaxInt16:
		return math.MaxInt16
	case s < math.MinInt16:
		return math.MinInt16
	}
	return int16(s)
}

// DecodeSample converts a 16-bit PCM sample back to float.
func DecodeSample(s int16) float64 {
	return float64(s) / MaxValue
}

// AppendPCM16 encodes samples as little-endian PCM16 and appends them to dst.
func AppendPCM16(dst []byte, samples []float64) []byte {
	for _, v := range samples {
		dst = binary.LittleEndian.AppendUint16(dst, uint16(EncodeSample(v)))
	}
	return dst
}
