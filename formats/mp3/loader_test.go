// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"io"
	"testing"

	"github.com/ik5/mixdown/engine"
)

// fakeMP3 hands out canned PCM bytes like gomp3.Decoder does.
type fakeMP3 struct {
	data []byte
	rate int
	pos  int
}

func (f *fakeMP3) Read(p []byte) (int, error) {
	if f.pos >= len(f.data) {
		return 0, io.EOF
	}
	n := copy(p, f.data[f.pos:])
	f.pos += n
	return n, nil
}

func (f *fakeMP3) SampleRate() int { return f.rate }

func TestLoad_BuildsPCM16Buffer(t *testing.T) {
	t.Parallel()

	pcm := []byte{1, 0, 2, 0, 3, 0, 4, 0, 5, 0} // 2.5 stereo frames
	format, buffer, err := load(&fakeMP3{data: pcm, rate: 44100})
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}

	if format.FormatTag != engine.FormatPCM || format.Channels != 2 ||
		format.BitsPerSample != 16 {
		t.Errorf("format = %+v", format)
	}
	if format.SamplesPerSec != 44100 {
		t.Errorf("SamplesPerSec = %d, want 44100", format.SamplesPerSec)
	}

	// Trailing partial frame dropped.
	if !bytes.Equal(buffer.AudioData, pcm[:8]) {
		t.Errorf("AudioData = %v, want %v", buffer.AudioData, pcm[:8])
	}
	if buffer.Flags&engine.EndOfStream == 0 {
		t.Error("buffer missing end-of-stream flag")
	}
}

func TestLoad_RejectsGarbage(t *testing.T) {
	t.Parallel()

	if _, _, err := Load(bytes.NewReader([]byte("definitely not an mp3"))); err == nil {
		t.Error("Load() succeeded on garbage input")
	}
}
