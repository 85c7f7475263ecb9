// Package wav implements the fixed 16-bit PCM WAV layout written by the
// recording node and read back by the save/playback node.
//
// The header is always the canonical 44 bytes (RIFF, fmt, data) in
// little-endian order:
//
//	offset  size  field
//	0       4     "RIFF"
//	4       4     36 + data size
//	8       4     "WAVE"
//	12      4     "fmt "
//	16      4     16
//	20      2     1 (PCM)
//	22      2     channels
//	24      4     sample rate
//	28      4     sample rate × channels × 2
//	32      2     channels × 2
//	34      2     16
//	36      4     "data"
//	40      4     samples × 2
//
// A recording writes a placeholder header when the take opens and rewrites
// it in place once the sample count is final.
package wav
