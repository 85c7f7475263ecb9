// Package saveaudio implements the save/playback node: a pass-through node
// that can capture its input into memory and play the captured samples back,
// alone or mixed over live input.
//
// The stored samples and the playback cursor belong to the render instance.
// The control instance only proposes changes (capture on/off, play, stop,
// clear, load) and learns through the render→control queue when playback
// reaches the end of the store.
package saveaudio
