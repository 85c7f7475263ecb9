package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/opd-ai/audionode/limits"
)

// HeaderSize is the length of the canonical header.
const HeaderSize = 44

const (
	fmtChunkSize  = 16
	formatPCM     = 1
	bitsPerSample = 16
)

var (
	// ErrInvalidHeader indicates bytes that are not a canonical PCM16 header.
	ErrInvalidHeader = errors.New("invalid wav header")

	// ErrUnsupportedFormat indicates a WAV file outside the fixed PCM16 layout.
	ErrUnsupportedFormat = errors.New("unsupported wav format")
)

// Header describes one recording. Only the fields that vary are stored; the
// rest of the canonical layout is derived.
type Header struct {
	Channels   uint16
	SampleRate uint32
	// Samples is the total count of 16-bit samples across all channels.
	Samples uint32
}

// NewHeader builds a header for a take of samples 16-bit samples.
func NewHeader(channels int, sampleRate uint32, samples uint64) Header {
	if samples > limits.MaxWAVSamples {
		samples = limits.MaxWAVSamples
	}
	return Header{
		Channels:   uint16(channels),
		SampleRate: sampleRate,
		Samples:    uint32(samples),
	}
}

// DataSize returns the data chunk length in bytes.
func (h Header) DataSize() uint32 {
	return h.Samples * limits.BytesPerSample
}

// RiffSize returns the RIFF chunk size: total file size minus 8.
func (h Header) RiffSize() uint32 {
	return limits.WAVHeaderOverhead + h.DataSize()
}

// ByteRate returns bytes per second of audio.
func (h Header) ByteRate() uint32 {
	return h.SampleRate * uint32(h.Channels) * limits.BytesPerSample
}

// BlockAlign returns bytes per frame.
func (h Header) BlockAlign() uint16 {
	return h.Channels * limits.BytesPerSample
}

// raw mirrors the on-disk layout so encoding/binary can write it in one call.
type raw struct {
	Riff          [4]byte
	RiffSize      uint32
	Wave          [4]byte
	Fmt           [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Data          [4]byte
	DataSize      uint32
}

func (h Header) raw() raw {
	return raw{
		Riff:          [4]byte{'R', 'I', 'F', 'F'},
		RiffSize:      h.RiffSize(),
		Wave:          [4]byte{'W', 'A', 'V', 'E'},
		Fmt:           [4]byte{'f', 'm', 't', ' '},
		FmtSize:       fmtChunkSize,
		AudioFormat:   formatPCM,
		Channels:      h.Channels,
		SampleRate:    h.SampleRate,
		ByteRate:      h.ByteRate(),
		BlockAlign:    h.BlockAlign(),
		BitsPerSample: bitsPerSample,
		Data:          [4]byte{'d', 'a', 't', 'a'},
		DataSize:      h.DataSize(),
	}
}

// MarshalBinary encodes the header as 44 little-endian bytes.
func (h Header) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(HeaderSize)
	if err := binary.Write(&buf, binary.LittleEndian, h.raw()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo writes the encoded header to w.
func (h Header) WriteTo(w io.Writer) (int64, error) {
	b, err := h.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	return int64(n), err
}

// ParseHeader decodes a canonical PCM16 header.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes, need %d", ErrInvalidHeader, len(b), HeaderSize)
	}

	var r raw
	if err := binary.Read(bytes.NewReader(b[:HeaderSize]), binary.LittleEndian, &r); err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}
	if string(r.Riff[:]) != "RIFF" || string(r.Wave[:]) != "WAVE" ||
		string(r.Fmt[:]) != "fmt " || string(r.Data[:]) != "data" {
		return Header{}, fmt.Errorf("%w: bad chunk tags", ErrInvalidHeader)
	}
	if r.AudioFormat != formatPCM || r.BitsPerSample != bitsPerSample || r.FmtSize != fmtChunkSize {
		return Header{}, fmt.Errorf("%w: format=%d bits=%d fmt_size=%d",
			ErrUnsupportedFormat, r.AudioFormat, r.BitsPerSample, r.FmtSize)
	}

	return Header{
		Channels:   r.Channels,
		SampleRate: r.SampleRate,
		Samples:    r.DataSize / limits.BytesPerSample,
	}, nil
}
