// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/riff"
	"github.com/ik5/mixdown/engine"
)

// File is a parsed WAV file: an engine wave format plus the raw encoded
// data region, ready for CreateSourceVoice / SubmitBuffer.
type File struct {
	Format engine.WaveFormat
	Data   []byte
}

// Buffer wraps the file's data region as a single end-of-stream buffer.
func (f *File) Buffer() engine.Buffer {
	return engine.Buffer{
		Flags:     engine.EndOfStream,
		AudioData: f.Data,
	}
}

// Load walks the RIFF chunks of a WAV stream and extracts the fmt and data
// chunks. PCM (8/16-bit) and MSADPCM formats pass through with their codec
// extra bytes preserved; 8-bit PCM is converted from the on-disk unsigned
// convention to the signed samples the engine decodes. Anything else fails
// with ErrUnsupportedWavFormat.
func Load(r io.Reader) (*File, error) {
	parser := riff.New(r)
	if err := parser.ParseHeaders(); err != nil {
		return nil, fmt.Errorf("parsing RIFF headers: %w", err)
	}
	if parser.Format != riff.WavFormatID {
		return nil, ErrNotWavFile
	}

	var file File
	var haveFmt, haveData bool
	for {
		chunk, err := parser.NextChunk()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading RIFF chunk: %w", err)
		}

		switch chunk.ID {
		case riff.FmtID:
			raw := make([]byte, chunk.Size)
			if _, err := io.ReadFull(chunk, raw); err != nil {
				return nil, fmt.Errorf("reading fmt chunk: %w", err)
			}
			format, err := parseFmt(raw)
			if err != nil {
				return nil, err
			}
			file.Format = format
			haveFmt = true
		case riff.DataFormatID:
			data := make([]byte, chunk.Size)
			if _, err := io.ReadFull(chunk, data); err != nil {
				return nil, fmt.Errorf("reading data chunk: %w", err)
			}
			file.Data = data
			haveData = true
		}
		chunk.Done()

		if haveFmt && haveData {
			break
		}
	}
	if !haveFmt || !haveData {
		return nil, ErrUnsupportedWavLayout
	}

	switch file.Format.FormatTag {
	case engine.FormatPCM:
		if file.Format.BitsPerSample == 8 {
			// On disk 8-bit WAV is unsigned; the engine wants signed.
			for i, b := range file.Data {
				file.Data[i] = b ^ 0x80
			}
		} else if file.Format.BitsPerSample != 16 {
			return nil, ErrUnsupportedWavFormat
		}
	case engine.FormatMSADPCM:
		// The engine counts MSADPCM alignment as the per-channel block size
		// less 22 bytes, not whole-block bytes.
		channels := file.Format.Channels
		if channels == 0 || uint32(file.Format.BlockAlign) < 22*uint32(channels) {
			return nil, ErrUnsupportedWavLayout
		}
		file.Format.BlockAlign = file.Format.BlockAlign/channels - 22
	default:
		return nil, ErrUnsupportedWavFormat
	}

	return &file, nil
}

func parseFmt(raw []byte) (engine.WaveFormat, error) {
	if len(raw) < 16 {
		return engine.WaveFormat{}, ErrUnsupportedWavLayout
	}
	format := engine.WaveFormat{
		FormatTag:      binary.LittleEndian.Uint16(raw[0:2]),
		Channels:       binary.LittleEndian.Uint16(raw[2:4]),
		SamplesPerSec:  binary.LittleEndian.Uint32(raw[4:8]),
		AvgBytesPerSec: binary.LittleEndian.Uint32(raw[8:12]),
		BlockAlign:     binary.LittleEndian.Uint16(raw[12:14]),
		BitsPerSample:  binary.LittleEndian.Uint16(raw[14:16]),
	}
	if len(raw) >= 18 {
		cbSize := int(binary.LittleEndian.Uint16(raw[16:18]))
		if cbSize > len(raw)-18 {
			cbSize = len(raw) - 18
		}
		if cbSize > 0 {
			format.Extra = append([]byte(nil), raw[18:18+cbSize]...)
		}
	}
	return format, nil
}
