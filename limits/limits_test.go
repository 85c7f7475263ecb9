package limits

import (
	"errors"
	"math"
	"testing"
)

// TestMaxWAVSamplesFitsHeader verifies that the largest allowed take still
// produces a RIFF size that fits in a u32.
func TestMaxWAVSamplesFitsHeader(t *testing.T) {
	riff := uint64(WAVHeaderOverhead) + uint64(MaxWAVSamples)*BytesPerSample
	if riff > math.MaxUint32 {
		t.Errorf("RIFF size for MaxWAVSamples = %d, exceeds u32", riff)
	}
	if FitsWAV(MaxWAVSamples + 1) {
		t.Error("FitsWAV accepted a take one sample past the limit")
	}
	if !FitsWAV(MaxWAVSamples) {
		t.Error("FitsWAV rejected a take exactly at the limit")
	}
}

func TestValidateChannels(t *testing.T) {
	tests := []struct {
		name     string
		channels int
		wantErr  bool
	}{
		{"zero", 0, true},
		{"mono", 1, false},
		{"stereo", 2, false},
		{"max", MaxChannels, false},
		{"too_many", MaxChannels + 1, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChannels(tt.channels)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateChannels(%d) error = %v, wantErr %v", tt.channels, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrOutOfRange) {
				t.Errorf("error %v does not wrap ErrOutOfRange", err)
			}
		})
	}
}

func TestValidateFramesPerBuffer(t *testing.T) {
	if err := ValidateFramesPerBuffer(0); err == nil {
		t.Error("expected error for zero frames")
	}
	if err := ValidateFramesPerBuffer(512); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateFramesPerBuffer(MaxFramesPerBuffer + 1); err == nil {
		t.Error("expected error above MaxFramesPerBuffer")
	}
}

func TestValidateSampleRate(t *testing.T) {
	for _, rate := range []uint32{8000, 44100, 48000, 96000, 384000} {
		if err := ValidateSampleRate(rate); err != nil {
			t.Errorf("ValidateSampleRate(%d) unexpected error: %v", rate, err)
		}
	}
	for _, rate := range []uint32{0, 7999, 384001} {
		if err := ValidateSampleRate(rate); err == nil {
			t.Errorf("ValidateSampleRate(%d) expected error", rate)
		}
	}
}
