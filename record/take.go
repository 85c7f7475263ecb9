package record

import (
	"io"

	"github.com/opd-ai/audionode/interfaces"
	"github.com/opd-ai/audionode/limits"
	"github.com/opd-ai/audionode/wav"
	"github.com/sirupsen/logrus"
)

// takeFile is one take's output file and the samples headed for it. A
// stopped take keeps its file open until the render side acknowledges the
// stop, which may happen after a newer take has started.
type takeFile struct {
	seq            uint64
	id             string
	name           string
	sink           interfaces.ISampleSink
	channels       int
	samplesWritten uint64
	buffered       []float64
	capWarned      bool
}

// isActive reports whether t is the take currently being recorded. Called
// with mu held.
func (n *Node) isActive(t *takeFile) bool {
	return n.recording && n.last == t
}

// write stores one captured buffer in the take it was captured for. Called
// with mu held.
func (n *Node) write(samples []float64, channels int, streaming bool, seq uint64) {
	t, ok := n.open[seq]
	if !ok {
		return
	}
	t.channels = channels

	total := t.samplesWritten + uint64(len(t.buffered)) + uint64(len(samples))
	if !limits.FitsWAV(total) {
		if !t.capWarned {
			t.capWarned = true
			n.logger("Node.write").WithFields(logrus.Fields{
				"file_name": t.name,
				"take_id":   t.id,
				"samples":   t.samplesWritten + uint64(len(t.buffered)),
			}).Warn("Recording reached the WAV size limit, dropping further buffers")
		}
		return
	}

	if !streaming {
		t.buffered = append(t.buffered, samples...)
		return
	}

	// Samples buffered earlier in the take go out first.
	if err := n.flush(t, samples); err != nil {
		n.logger("Node.write").WithFields(logrus.Fields{
			"file_name": t.name,
			"take_id":   t.id,
			"error":     err.Error(),
		}).Error("Failed to write samples")
	}
}

// flush writes the take's buffered samples followed by samples and counts
// both as written. The buffered samples are discarded either way. Called
// with mu held.
func (n *Node) flush(t *takeFile, samples []float64) error {
	if len(t.buffered) == 0 && len(samples) == 0 {
		return nil
	}
	n.pcm = wav.AppendPCM16(n.pcm[:0], t.buffered)
	n.pcm = wav.AppendPCM16(n.pcm, samples)
	count := uint64(len(t.buffered) + len(samples))
	t.buffered = t.buffered[:0]

	if _, err := t.sink.Write(n.pcm); err != nil {
		return err
	}
	t.samplesWritten += count
	return nil
}

// finalize flushes buffered samples after anything already streamed,
// rewrites the header with the final size and closes the file. Called with
// mu held.
func (n *Node) finalize(t *takeFile) {
	log := n.logger("Node.finalize").WithFields(logrus.Fields{
		"file_name": t.name,
		"take_id":   t.id,
	})

	if err := n.flush(t, nil); err != nil {
		log.WithField("error", err.Error()).Error("Failed to flush buffered samples")
	}

	opts := n.Context().Options()
	channels := t.channels
	if channels == 0 {
		channels = opts.Channels
	}
	header := wav.NewHeader(channels, opts.SampleRate, t.samplesWritten)

	if _, err := t.sink.Seek(0, io.SeekStart); err != nil {
		log.WithField("error", err.Error()).Error("Failed to seek to header")
	} else if _, err := header.WriteTo(t.sink); err != nil {
		log.WithField("error", err.Error()).Error("Failed to rewrite header")
	}
	if err := t.sink.Close(); err != nil {
		log.WithField("error", err.Error()).Error("Failed to close recording file")
	}
	t.sink = nil
	delete(n.open, t.seq)

	log.WithFields(logrus.Fields{
		"samples":  t.samplesWritten,
		"channels": channels,
	}).Info("Recording finalized")
}
