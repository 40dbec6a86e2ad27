// SPDX-License-Identifier: EPL-2.0

package mixdown

import (
	"fmt"

	"github.com/ik5/mixdown/engine"
)

// RenderBuffer is a high-level convenience function that mixes one encoded
// buffer offline: it builds an engine, plays the buffer through a single
// source voice, and collects the master output until the stream ends.
//
// Parameters:
//   - format: the buffer's wave format (as accepted by CreateSourceVoice)
//   - buf: the encoded region; the end-of-stream flag is implied
//   - wma: packet table for WMA/XMA buffers, nil otherwise
//   - sampleRate: master output rate in Hz (e.g. 44100, 48000)
//   - channels: master output channels (1 or 2)
//   - samplesPerTick: tick granularity (e.g. 480 for 10ms at 48kHz)
//
// Returns the interleaved float32 master output. For custom voice graphs,
// drive an engine.Engine directly.
func RenderBuffer(format engine.WaveFormat, buf engine.Buffer, wma *engine.BufferWMA, sampleRate, channels, samplesPerTick uint32) ([]float32, error) {
	eng, err := engine.NewEngine(channels, sampleRate, samplesPerTick)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	done := false
	voice, err := eng.CreateSourceVoice(format, 0, &engine.VoiceCallback{
		OnStreamEnd: func() { done = true },
	})
	if err != nil {
		return nil, fmt.Errorf("creating voice: %w", err)
	}

	buf.Flags |= engine.EndOfStream
	if err := voice.SubmitBuffer(buf, wma); err != nil {
		return nil, fmt.Errorf("submitting buffer: %w", err)
	}
	if err := voice.Start(); err != nil {
		return nil, err
	}
	eng.StartEngine()

	var rendered []float32
	tick := make([]float32, channels*samplesPerTick)
	for !done {
		if err := eng.Update(tick); err != nil {
			return rendered, err
		}
		rendered = append(rendered, tick...)
	}
	return rendered, nil
}
