// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/mixdown/engine"
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// Load decodes an entire MP3 stream into a 16-bit stereo PCM engine buffer
// at the stream's native rate. go-mp3 always emits interleaved stereo
// int16 little-endian, which is exactly the engine's PCM16 wire format, so
// the decoded bytes are submitted as-is.
func Load(r io.Reader) (engine.WaveFormat, engine.Buffer, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return engine.WaveFormat{}, engine.Buffer{}, fmt.Errorf("opening mp3: %w", err)
	}
	return load(dec)
}

func load(dec mp3Reader) (engine.WaveFormat, engine.Buffer, error) {
	data, err := io.ReadAll(dec)
	if err != nil {
		return engine.WaveFormat{}, engine.Buffer{}, fmt.Errorf("decoding mp3: %w", err)
	}
	// Whole frames only
	data = data[:len(data)-len(data)%4]

	format := engine.WaveFormat{
		FormatTag:      engine.FormatPCM,
		Channels:       2,
		SamplesPerSec:  uint32(dec.SampleRate()),
		AvgBytesPerSec: uint32(dec.SampleRate()) * 4,
		BlockAlign:     4,
		BitsPerSample:  16,
	}
	buffer := engine.Buffer{
		Flags:     engine.EndOfStream,
		AudioData: data,
	}
	return format, buffer, nil
}
