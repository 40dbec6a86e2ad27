// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/ik5/mixdown/engine"
	"github.com/ik5/mixdown/utils"
	"github.com/jfreymuth/oggvorbis"
)

// Load decodes an Ogg Vorbis stream into a PCM16 engine buffer at the
// stream's native rate and channel layout. Streams with more than two
// channels are rejected; the engine mixes mono and stereo sources only.
func Load(r io.Reader) (engine.WaveFormat, engine.Buffer, error) {
	samples, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return engine.WaveFormat{}, engine.Buffer{}, fmt.Errorf("decoding vorbis: %w", err)
	}
	if format.Channels < 1 || format.Channels > 2 {
		return engine.WaveFormat{}, engine.Buffer{}, engine.ErrUnsupportedFormat
	}

	data := make([]byte, len(samples)*2)
	utils.Float32SliceToInt16LE(data, samples)

	channels := uint16(format.Channels)
	wf := engine.WaveFormat{
		FormatTag:      engine.FormatPCM,
		Channels:       channels,
		SamplesPerSec:  uint32(format.SampleRate),
		AvgBytesPerSec: uint32(format.SampleRate) * uint32(channels) * 2,
		BlockAlign:     channels * 2,
		BitsPerSample:  16,
	}
	buffer := engine.Buffer{
		Flags:     engine.EndOfStream,
		AudioData: data,
	}
	return wf, buffer, nil
}
