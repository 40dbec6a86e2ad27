// SPDX-License-Identifier: EPL-2.0

package engine

import "encoding/binary"

// PCM decoders. The wire format is little-endian signed; 8-bit input is
// promoted to 16-bit by a left shift.

func decodeMonoPCM8(v *Voice, b *Buffer, curOffset uint32, out []int16, samples uint32) {
	buf := b.AudioData[b.PlayBegin+curOffset:]
	for i := uint32(0); i < samples; i++ {
		out[i] = int16(int8(buf[i])) << 8
	}
}

func decodeStereoPCM8(v *Voice, b *Buffer, curOffset uint32, out []int16, samples uint32) {
	buf := b.AudioData[(b.PlayBegin+curOffset)*2:]
	for i := uint32(0); i < samples*2; i++ {
		out[i] = int16(int8(buf[i])) << 8
	}
}

func decodeMonoPCM16(v *Voice, b *Buffer, curOffset uint32, out []int16, samples uint32) {
	buf := b.AudioData[(b.PlayBegin+curOffset)*2:]
	for i := uint32(0); i < samples; i++ {
		out[i] = int16(binary.LittleEndian.Uint16(buf[i*2:]))
	}
}

func decodeStereoPCM16(v *Voice, b *Buffer, curOffset uint32, out []int16, samples uint32) {
	buf := b.AudioData[(b.PlayBegin+curOffset)*4:]
	for i := uint32(0); i < samples*2; i++ {
		out[i] = int16(binary.LittleEndian.Uint16(buf[i*2:]))
	}
}
