package saveaudio

import (
	"testing"

	"github.com/opd-ai/audionode/graph"
	simtesting "github.com/opd-ai/audionode/testing"
	"github.com/opd-ai/audionode/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	bufA = []float64{0.1, 0.2, 0.3, 0.4}
	bufB = []float64{0.5, 0.6, 0.7, 0.8}
)

type fixture struct {
	ctx   *graph.Context
	store *simtesting.MemoryStorage
	node  *Node
	input *simtesting.ScriptedInput
	out   []float64
}

func newFixture(t *testing.T, buffers ...[]float64) *fixture {
	t.Helper()

	opts := graph.NewOptions()
	opts.Channels = 1
	opts.FramesPerBuffer = 4
	opts.QueueCapacity = 32
	opts.BlockPoolSize = 4
	opts.MaxNodes = 8

	ctx, err := graph.NewContext(opts)
	require.NoError(t, err)

	store := simtesting.NewMemoryStorage()
	node, err := New(ctx, "looper", store)
	require.NoError(t, err)

	input := simtesting.NewScriptedInput(buffers...)
	require.True(t, ctx.Connect(node, input))

	return &fixture{ctx: ctx, store: store, node: node, input: input, out: make([]float64, 4)}
}

// tick renders one period and returns a copy of the output.
func (f *fixture) tick() ([]float64, bool) {
	valid := f.ctx.RenderTick(f.out)
	return append([]float64(nil), f.out...), valid
}

// putWAV stores a take whose samples decode back exactly.
func putWAV(t *testing.T, store *simtesting.MemoryStorage, name string, channels int, pcm ...int16) []float64 {
	t.Helper()
	samples := make([]float64, len(pcm))
	for i, s := range pcm {
		samples[i] = wav.DecodeSample(s)
	}
	data, err := wav.NewHeader(channels, 48000, uint64(len(pcm))).MarshalBinary()
	require.NoError(t, err)
	store.Put(name, wav.AppendPCM16(data, samples))
	return samples
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil, "x", nil)
	assert.ErrorIs(t, err, ErrNilContext)
}

func TestPassThrough(t *testing.T) {
	f := newFixture(t, bufA, nil)

	out, valid := f.tick()
	assert.True(t, valid)
	assert.Equal(t, bufA, out)

	out, valid = f.tick()
	assert.False(t, valid)
	assert.Equal(t, []float64{0, 0, 0, 0}, out)
}

func TestCaptureRoundTrip(t *testing.T) {
	f := newFixture(t, bufA, bufB)

	f.node.SetSaveAudio(true)
	assert.True(t, f.node.GetSaveAudio())
	f.tick()
	f.tick()

	f.node.SetSaveAudio(false)
	f.node.PlaySavedAudio()
	assert.True(t, f.node.IsPlaying())

	out, valid := f.tick()
	assert.True(t, valid)
	assert.Equal(t, bufA, out)

	out, valid = f.tick()
	assert.True(t, valid)
	assert.Equal(t, bufB, out)

	out, valid = f.tick()
	assert.False(t, valid, "playback stopped at the end of the store")
	assert.Equal(t, []float64{0, 0, 0, 0}, out)

	finished := 0
	f.node.OnPlaybackFinished(func() { finished++ })
	assert.True(t, f.node.IsPlaying(), "control learns about the end on the next control tick")
	f.ctx.ControlTick()
	assert.False(t, f.node.IsPlaying())
	assert.Equal(t, 1, finished)
}

func TestPlaybackZeroFillsPartialBuffer(t *testing.T) {
	f := newFixture(t)
	samples := putWAV(t, f.store, "six.wav", 1, 100, 200, 300, 400, 500, 600)

	require.NoError(t, f.node.LoadSavedAudio("six.wav"))
	f.node.PlaySavedAudio()

	out, _ := f.tick()
	assert.Equal(t, samples[:4], out)
	out, valid := f.tick()
	assert.True(t, valid)
	assert.Equal(t, []float64{samples[4], samples[5], 0, 0}, out)
}

func TestMixingWithLiveInput(t *testing.T) {
	live := []float64{0.25, 0.25, 0.25, 0.25}
	f := newFixture(t, live)
	stored := putWAV(t, f.store, "two.wav", 1, 8192, -8192)

	require.NoError(t, f.node.LoadSavedAudio("two.wav"))
	f.node.PlaySavedAudio()

	out, valid := f.tick()
	assert.True(t, valid)
	assert.InDelta(t, live[0]+stored[0], out[0], 1e-12)
	assert.InDelta(t, live[1]+stored[1], out[1], 1e-12)
	assert.Equal(t, live[2:], out[2:], "beyond the store the output is the live input")
}

func TestMixingCapturedOverLive(t *testing.T) {
	f := newFixture(t, bufA, bufB)

	f.node.SetSaveAudio(true)
	f.tick()
	f.node.SetSaveAudio(false)
	f.node.PlaySavedAudio()

	out, valid := f.tick()
	assert.True(t, valid)
	for i := range out {
		assert.InDelta(t, bufA[i]+bufB[i], out[i], 1e-12)
	}
}

func TestClearThenPlayContributesNothing(t *testing.T) {
	f := newFixture(t, bufA)

	f.node.SetSaveAudio(true)
	f.tick()
	f.node.ClearSavedAudio()
	f.node.PlaySavedAudio()

	out, valid := f.tick()
	assert.False(t, valid)
	assert.Equal(t, []float64{0, 0, 0, 0}, out)

	f.ctx.ControlTick()
	assert.False(t, f.node.IsPlaying())

	_, valid = f.tick()
	assert.False(t, valid)
}

func TestResumeContinuesFromCursor(t *testing.T) {
	f := newFixture(t)
	samples := putWAV(t, f.store, "eight.wav", 1, 1, 2, 3, 4, 5, 6, 7, 8)

	require.NoError(t, f.node.LoadSavedAudio("eight.wav"))
	f.node.PlaySavedAudio()
	out, _ := f.tick()
	assert.Equal(t, samples[:4], out)

	f.node.StopPlaying()
	assert.False(t, f.node.IsPlaying())
	_, valid := f.tick()
	assert.False(t, valid)

	f.node.PlaySavedAudio()
	out, _ = f.tick()
	assert.Equal(t, samples[4:], out)

	// Finished playback rewinds, so the next play starts over.
	f.node.PlaySavedAudio()
	out, _ = f.tick()
	assert.Equal(t, samples[:4], out)
}

func TestEnablingCaptureDiscardsStore(t *testing.T) {
	f := newFixture(t, bufA, bufB)

	f.node.SetSaveAudio(true)
	f.tick()
	f.node.SetSaveAudio(true)
	f.tick()
	f.node.SetSaveAudio(false)
	f.node.PlaySavedAudio()

	out, _ := f.tick()
	assert.Equal(t, bufB, out)
	_, valid := f.tick()
	assert.False(t, valid)
}

func TestStaleFinishIgnoredAfterReplay(t *testing.T) {
	f := newFixture(t)
	putWAV(t, f.store, "four.wav", 1, 1, 2, 3, 4)
	require.NoError(t, f.node.LoadSavedAudio("four.wav"))

	finished := 0
	f.node.OnPlaybackFinished(func() { finished++ })

	f.node.PlaySavedAudio()
	f.tick()
	f.node.PlaySavedAudio()

	f.ctx.ControlTick()
	assert.True(t, f.node.IsPlaying(), "finish of the earlier play is ignored")
	assert.Zero(t, finished)

	f.tick()
	f.ctx.ControlTick()
	assert.False(t, f.node.IsPlaying())
	assert.Equal(t, 1, finished)
}

func TestLoadSavedAudioErrors(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.node.LoadSavedAudio("missing.wav"), simtesting.ErrNotFound)

	putWAV(t, f.store, "stereo.wav", 2, 1, 2, 3, 4)
	assert.ErrorIs(t, f.node.LoadSavedAudio("stereo.wav"), ErrChannelMismatch)

	f.store.Put("junk.wav", []byte("definitely not a wav file, just text padding it out"))
	assert.Error(t, f.node.LoadSavedAudio("junk.wav"))

	bare, err := New(f.ctx, "bare", nil)
	require.NoError(t, err)
	assert.ErrorIs(t, bare.LoadSavedAudio("four.wav"), ErrNoStorage)
}

func TestDestroy(t *testing.T) {
	f := newFixture(t, bufA)
	f.node.Destroy()

	_, valid := f.tick()
	assert.False(t, valid)
	assert.Zero(t, f.ctx.Stats().LiveNodes)

	f.node.PlaySavedAudio()
	assert.Zero(t, f.ctx.Stats().ToRender.Pending)

	putWAV(t, f.store, "four.wav", 1, 1, 2, 3, 4)
	assert.ErrorIs(t, f.node.LoadSavedAudio("four.wav"), ErrNotPaired)
}

func TestLoadSavedAudioConvertsSampleRate(t *testing.T) {
	f := newFixture(t)

	data, err := wav.NewHeader(1, 24000, 2).MarshalBinary()
	require.NoError(t, err)
	f.store.Put("half.wav", wav.AppendPCM16(data, []float64{0, wav.DecodeSample(16384)}))

	require.NoError(t, f.node.LoadSavedAudio("half.wav"))
	f.node.PlaySavedAudio()

	out, valid := f.tick()
	assert.True(t, valid)
	peak := wav.DecodeSample(16384)
	assert.InDeltaSlice(t, []float64{0, peak / 2, peak, peak}, out, 1e-12)
}
