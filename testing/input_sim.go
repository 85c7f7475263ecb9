package testing

import "sync"

// ScriptedInput replays a fixed list of buffers, one per call to
// AccumulateInputSamples. A nil entry stands for a tick without input. Once
// the script runs out every further tick has no input.
type ScriptedInput struct {
	mu     sync.Mutex
	script [][]float64
	next   int
	calls  int
}

// NewScriptedInput creates an input source that returns buffers in order.
func NewScriptedInput(buffers ...[]float64) *ScriptedInput {
	return &ScriptedInput{script: buffers}
}

// Append adds buffers to the end of the script.
func (s *ScriptedInput) Append(buffers ...[]float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.script = append(s.script, buffers...)
}

// AccumulateInputSamples copies the next scripted buffer into dst. Samples
// past the scripted length are zeroed. It reports whether input was present.
func (s *ScriptedInput) AccumulateInputSamples(dst []float64, channels int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.next >= len(s.script) {
		return false
	}
	buf := s.script[s.next]
	s.next++
	if buf == nil {
		return false
	}

	n := copy(dst, buf)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
	return true
}

// Calls returns how many ticks asked for input.
func (s *ScriptedInput) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Remaining returns how many scripted buffers have not been consumed.
func (s *ScriptedInput) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.script) - s.next
}
