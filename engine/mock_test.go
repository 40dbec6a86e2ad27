// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"encoding/binary"
	"testing"
)

// pcm16Bytes packs int16 samples into the little-endian wire format.
func pcm16Bytes(samples []int16) []byte {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
	}
	return data
}

func pcm16Format(channels uint16, sampleRate uint32) WaveFormat {
	return WaveFormat{
		FormatTag:      FormatPCM,
		Channels:       channels,
		SamplesPerSec:  sampleRate,
		AvgBytesPerSec: sampleRate * uint32(channels) * 2,
		BlockAlign:     channels * 2,
		BitsPerSample:  16,
	}
}

func pcm8Format(channels uint16, sampleRate uint32) WaveFormat {
	return WaveFormat{
		FormatTag:      FormatPCM,
		Channels:       channels,
		SamplesPerSec:  sampleRate,
		AvgBytesPerSec: sampleRate * uint32(channels),
		BlockAlign:     channels,
		BitsPerSample:  8,
	}
}

func adpcmFormat(channels uint16, sampleRate uint32, align uint16) WaveFormat {
	return WaveFormat{
		FormatTag:     FormatMSADPCM,
		Channels:      channels,
		SamplesPerSec: sampleRate,
		BlockAlign:    align,
		BitsPerSample: 4,
	}
}

// monoADPCMBlock assembles one mono MSADPCM block: 7-byte preamble plus
// align+15 nibble bytes.
func monoADPCMBlock(align uint32, predictor uint8, delta, sample1, sample2 int16, nibbles []byte) []byte {
	block := make([]byte, 7+align+15)
	block[0] = predictor
	binary.LittleEndian.PutUint16(block[1:], uint16(delta))
	binary.LittleEndian.PutUint16(block[3:], uint16(sample1))
	binary.LittleEndian.PutUint16(block[5:], uint16(sample2))
	copy(block[7:], nibbles)
	return block
}

// stereoADPCMBlock assembles one stereo block with per-channel preamble
// values.
func stereoADPCMBlock(align uint32, predL, predR uint8, deltaL, deltaR, s1L, s1R, s2L, s2R int16, nibbles []byte) []byte {
	block := make([]byte, 14+(align+15)*2)
	block[0] = predL
	block[1] = predR
	binary.LittleEndian.PutUint16(block[2:], uint16(deltaL))
	binary.LittleEndian.PutUint16(block[4:], uint16(deltaR))
	binary.LittleEndian.PutUint16(block[6:], uint16(s1L))
	binary.LittleEndian.PutUint16(block[8:], uint16(s1R))
	binary.LittleEndian.PutUint16(block[10:], uint16(s2L))
	binary.LittleEndian.PutUint16(block[12:], uint16(s2R))
	copy(block[14:], nibbles)
	return block
}

// newTestEngine builds a started engine for mixing tests.
func newTestEngine(t *testing.T, channels, sampleRate, samplesPerTick uint32) *Engine {
	t.Helper()

	eng, err := NewEngine(channels, sampleRate, samplesPerTick)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	eng.StartEngine()
	return eng
}

// runTick runs one Update and returns the tick output.
func runTick(t *testing.T, eng *Engine) []float32 {
	t.Helper()

	out := make([]float32, eng.MasterChannels()*eng.SamplesPerTick())
	if err := eng.Update(out); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	return out
}

// callbackLog records callback firing order as short tags.
type callbackLog struct {
	events []string
}

func (l *callbackLog) voiceCallback() *VoiceCallback {
	return &VoiceCallback{
		OnBufferStart: func(any) { l.events = append(l.events, "BufferStart") },
		OnBufferEnd:   func(any) { l.events = append(l.events, "BufferEnd") },
		OnLoopEnd:     func(any) { l.events = append(l.events, "LoopEnd") },
		OnStreamEnd:   func() { l.events = append(l.events, "StreamEnd") },
	}
}

// scriptedCodec is a PacketCodec fake: every accepted packet queues the
// frame produced by frameFor, and ReceiveFrame drains the queue. Packets
// are recorded for assertions.
type scriptedCodec struct {
	padding  int
	frameFor func(packet []byte) CodecFrame

	packets [][]byte
	queue   []CodecFrame

	failReceive error
	closed      bool
}

func (c *scriptedCodec) SendPacket(packet []byte) error {
	c.packets = append(c.packets, append([]byte(nil), packet...))
	if c.frameFor != nil {
		c.queue = append(c.queue, c.frameFor(packet))
	}
	return nil
}

func (c *scriptedCodec) ReceiveFrame() (CodecFrame, error) {
	if len(c.queue) == 0 {
		return CodecFrame{}, ErrNeedMoreData
	}
	if c.failReceive != nil {
		return CodecFrame{}, c.failReceive
	}
	frame := c.queue[0]
	c.queue = c.queue[1:]
	return frame, nil
}

func (c *scriptedCodec) RequiredPadding() int { return c.padding }

func (c *scriptedCodec) Close() error {
	c.closed = true
	return nil
}

// newXWMATestVoice wires a source voice directly to a fake codec, skipping
// the registry.
func newXWMATestVoice(eng *Engine, channels uint16, blockAlign uint16, codec PacketCodec) *Voice {
	v := newVoice(eng, voiceSource, uint32(channels))
	v.src = &sourceState{
		format: WaveFormat{
			FormatTag:     FormatWMAudio2,
			Channels:      channels,
			SamplesPerSec: eng.MasterSampleRate(),
			BlockAlign:    blockAlign,
			BitsPerSample: 16,
		},
		freqRatio: 1.0,
		decode:    decodeXWMA,
		wma:       &xwmaState{codec: codec},
	}
	v.src.decodeSamples = eng.SamplesPerTick() + extraDecodePadding
	v.src.decodeCache = make([]int16, v.src.decodeSamples*uint32(channels))
	v.src.resampleCache = make([]float32, eng.SamplesPerTick()*uint32(channels))
	v.sends = []Send{{Target: eng.master, Coefficients: DefaultMatrix(v.channels, eng.MasterChannels())}}
	eng.sources = append(eng.sources, v)
	return v
}
