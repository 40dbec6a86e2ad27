// SPDX-License-Identifier: EPL-2.0

// Package audiotest builds encoded test buffers (PCM16 data and formats,
// sine tones, mono MSADPCM blocks) for exercising the mixing engine without
// real media files. It has no packet-codec fakes.
package audiotest

import (
	"encoding/binary"
	"math"

	"github.com/ik5/mixdown/engine"
)

// PCM16Bytes packs int16 samples into the engine's little-endian wire
// format.
func PCM16Bytes(samples []int16) []byte {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
	}
	return data
}

// Sine16 generates n mono int16 samples of a sine wave at frequency hz.
func Sine16(sampleRate, n int, frequency float64) []int16 {
	samples := make([]int16, n)
	for i := range samples {
		t := float64(i) / float64(sampleRate)
		samples[i] = int16(math.Sin(2*math.Pi*frequency*t) * 16384)
	}
	return samples
}

// PCM16Format describes samples produced by PCM16Bytes.
func PCM16Format(channels uint16, sampleRate uint32) engine.WaveFormat {
	return engine.WaveFormat{
		FormatTag:      engine.FormatPCM,
		Channels:       channels,
		SamplesPerSec:  sampleRate,
		AvgBytesPerSec: sampleRate * uint32(channels) * 2,
		BlockAlign:     channels * 2,
		BitsPerSample:  16,
	}
}

// MonoADPCMBlock assembles one mono MSADPCM block: 7-byte preamble plus
// align+15 nibble bytes (zero-padded or truncated to fit).
func MonoADPCMBlock(align uint32, predictor uint8, delta, sample1, sample2 int16, nibbles []byte) []byte {
	block := make([]byte, 7+align+15)
	block[0] = predictor
	binary.LittleEndian.PutUint16(block[1:], uint16(delta))
	binary.LittleEndian.PutUint16(block[3:], uint16(sample1))
	binary.LittleEndian.PutUint16(block[5:], uint16(sample2))
	copy(block[7:], nibbles)
	return block
}
