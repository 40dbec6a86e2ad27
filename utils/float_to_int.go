// SPDX-License-Identifier: EPL-2.0

package utils

import "encoding/binary"

func Float32ToInt16(x float32) int16 {
	// Clamp and scale
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// Float32SliceToInt16LE converts normalized float32 samples to 16-bit
// signed little-endian PCM bytes. dst must hold 2*len(src) bytes; the
// function returns the byte count written.
func Float32SliceToInt16LE(dst []byte, src []float32) int {
	for i, x := range src {
		binary.LittleEndian.PutUint16(dst[i*2:], uint16(Float32ToInt16(x)))
	}
	return len(src) * 2
}
