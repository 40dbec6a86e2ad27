// SPDX-License-Identifier: EPL-2.0

package engine

import "encoding/binary"

// MSADPCM blocks carry a preamble (predictor index, initial delta, two
// warm-up samples, doubled L/R for stereo) followed by packed 4-bit
// nibbles. BlockAlign here is the per-channel block size less 22 bytes: a
// block spans (BlockAlign+22) bytes per channel (7 preamble bytes plus
// BlockAlign+15 nibble bytes) and decodes to (BlockAlign+16)*2 samples per
// channel.

var adpcmAdaption = [16]int32{
	230, 230, 230, 230, 307, 409, 512, 614,
	768, 614, 512, 409, 307, 230, 230, 230,
}

var adpcmCoeff1 = [7]int32{256, 512, 0, 192, 240, 460, 392}

var adpcmCoeff2 = [7]int32{0, -256, 0, 64, 0, -208, -232}

// adpcmChannel is the rolling decode state of one channel within a block.
type adpcmChannel struct {
	predictor uint8
	delta     int16
	sample1   int16
	sample2   int16
}

func (c *adpcmChannel) parseNibble(nibble uint8) int16 {
	signed := int32(nibble)
	if nibble&0x08 != 0 {
		signed -= 0x10
	}

	sample := (int32(c.sample1)*adpcmCoeff1[c.predictor] +
		int32(c.sample2)*adpcmCoeff2[c.predictor]) / 256
	sample += signed * int32(c.delta)
	if sample < -32768 {
		sample = -32768
	} else if sample > 32767 {
		sample = 32767
	}

	c.sample2 = c.sample1
	c.sample1 = int16(sample)
	c.delta = int16(adpcmAdaption[nibble] * int32(c.delta) / 256)
	if c.delta < 16 {
		c.delta = 16
	}
	return int16(sample)
}

func readPreamble(buf []byte, ch *adpcmChannel, deltaAt, samplesAt int) {
	ch.predictor = buf[0]
	ch.delta = int16(binary.LittleEndian.Uint16(buf[deltaAt:]))
	ch.sample1 = int16(binary.LittleEndian.Uint16(buf[samplesAt:]))
	ch.sample2 = int16(binary.LittleEndian.Uint16(buf[samplesAt+2:]))
}

func decodeMonoMSADPCMBlock(buf []byte, blockCache []int16, align uint32) {
	var ch adpcmChannel
	readPreamble(buf, &ch, 1, 3)
	if ch.predictor > 6 {
		// Out-of-range predictor means the block is garbage; silence beats
		// indexing past the coefficient tables.
		clear(blockCache[:(align+16)*2])
		return
	}

	blockCache[0] = ch.sample1
	blockCache[1] = ch.sample2
	nibbles := buf[7 : 7+align+15]
	out := blockCache[2:]
	for i := uint32(0); i < align+15; i++ {
		out[i*2] = ch.parseNibble(nibbles[i] >> 4)
		out[i*2+1] = ch.parseNibble(nibbles[i] & 0x0F)
	}
}

func decodeStereoMSADPCMBlock(buf []byte, blockCache []int16, align uint32) {
	var left, right adpcmChannel
	left.predictor = buf[0]
	right.predictor = buf[1]
	left.delta = int16(binary.LittleEndian.Uint16(buf[2:]))
	right.delta = int16(binary.LittleEndian.Uint16(buf[4:]))
	left.sample1 = int16(binary.LittleEndian.Uint16(buf[6:]))
	right.sample1 = int16(binary.LittleEndian.Uint16(buf[8:]))
	left.sample2 = int16(binary.LittleEndian.Uint16(buf[10:]))
	right.sample2 = int16(binary.LittleEndian.Uint16(buf[12:]))
	if left.predictor > 6 || right.predictor > 6 {
		clear(blockCache[:(align+16)*4])
		return
	}

	blockCache[0] = left.sample2
	blockCache[1] = right.sample2
	blockCache[2] = left.sample1
	blockCache[3] = right.sample1
	nibbles := buf[14 : 14+(align+15)*2]
	out := blockCache[4:]
	for i := uint32(0); i < (align+15)*2; i++ {
		out[i*2] = left.parseNibble(nibbles[i] >> 4)
		out[i*2+1] = right.parseNibble(nibbles[i] & 0x0F)
	}
}

// decodeMonoMSADPCM serves an arbitrary (curOffset, samples) window: it
// locates the enclosing block, skips curOffset%blockSamples decoded samples
// when entering mid-block, and walks whole blocks until the window is full.
func decodeMonoMSADPCM(v *Voice, b *Buffer, curOffset uint32, out []int16, samples uint32) {
	align := uint32(v.src.format.BlockAlign)
	blockSamples := (align + 16) * 2
	blockBytes := align + 22

	buf := b.AudioData[(curOffset/blockSamples)*blockBytes:]
	midOffset := curOffset % blockSamples

	blockCache := make([]int16, blockSamples)
	for samples > 0 {
		copyCount := blockSamples - midOffset
		if copyCount > samples {
			copyCount = samples
		}
		if uint32(len(buf)) < blockBytes {
			// Buffer too short for a whole block: client contract
			// violation, serve silence instead of reading out of range.
			clear(out[:samples])
			return
		}
		decodeMonoMSADPCMBlock(buf, blockCache, align)
		copy(out[:copyCount], blockCache[midOffset:midOffset+copyCount])
		buf = buf[blockBytes:]
		out = out[copyCount:]
		samples -= copyCount
		midOffset = 0
	}
}

func decodeStereoMSADPCM(v *Voice, b *Buffer, curOffset uint32, out []int16, samples uint32) {
	align := uint32(v.src.format.BlockAlign)
	blockSamples := (align + 16) * 2
	blockBytes := (align + 22) * 2

	buf := b.AudioData[(curOffset/blockSamples)*blockBytes:]
	midOffset := curOffset % blockSamples

	blockCache := make([]int16, blockSamples*2)
	for samples > 0 {
		copyCount := blockSamples - midOffset
		if copyCount > samples {
			copyCount = samples
		}
		if uint32(len(buf)) < blockBytes {
			clear(out[:samples*2])
			return
		}
		decodeStereoMSADPCMBlock(buf, blockCache, align)
		copy(out[:copyCount*2], blockCache[midOffset*2:(midOffset+copyCount)*2])
		buf = buf[blockBytes:]
		out = out[copyCount*2:]
		samples -= copyCount
		midOffset = 0
	}
}
