// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"encoding/binary"
	"fmt"
	"io"

	goaiff "github.com/go-audio/aiff"
	"github.com/ik5/mixdown/engine"
)

// Load decodes a 16-bit AIFF file into a PCM16 engine buffer. go-audio
// needs random access, so non-seekable readers are slurped into memory
// first.
func Load(r io.Reader) (engine.WaveFormat, engine.Buffer, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return engine.WaveFormat{}, engine.Buffer{}, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = &readSeeker{data: data}
	}

	dec := goaiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return engine.WaveFormat{}, engine.Buffer{}, ErrNotAiffFile
	}
	dec.ReadInfo()
	if dec.BitDepth != 16 {
		return engine.WaveFormat{}, engine.Buffer{}, ErrOnlyPCM16Supported
	}
	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.NumChannels > 2 {
		return engine.WaveFormat{}, engine.Buffer{}, engine.ErrUnsupportedFormat
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return engine.WaveFormat{}, engine.Buffer{}, fmt.Errorf("decoding aiff: %w", err)
	}

	data := make([]byte, len(pcm.Data)*2)
	for i, s := range pcm.Data {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(int16(s)))
	}

	channels := uint16(format.NumChannels)
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

// readSeeker implements io.ReadSeeker for in-memory data
type readSeeker struct {
	data   []byte
	offset int64
}

func (rs *readSeeker) Read(p []byte) (n int, err error) {
	if rs.offset >= int64(len(rs.data)) {
		return 0, io.EOF
	}
	n = copy(p, rs.data[rs.offset:])
	rs.offset += int64(n)
	return n, nil
}

func (rs *readSeeker) Seek(offset int64, whence int) (int64, error) {
	var newOffset int64
	switch whence {
	case io.SeekStart:
		newOffset = offset
	case io.SeekCurrent:
		newOffset = rs.offset + offset
	case io.SeekEnd:
		newOffset = int64(len(rs.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}

	if newOffset < 0 {
		return 0, fmt.Errorf("negative position")
	}

	rs.offset = newOffset
	return newOffset, nil
}
