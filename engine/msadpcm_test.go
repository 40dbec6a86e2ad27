// SPDX-License-Identifier: EPL-2.0

package engine

import "testing"

func TestDecodeMonoMSADPCM_ZeroNibbles(t *testing.T) {
	t.Parallel()

	// Zero warm-up samples, zero nibbles: every predicted sample is zero
	// and the delta is pinned at its floor, so the whole block decodes to
	// silence.
	const align = 256
	block := monoADPCMBlock(align, 0, 16, 0, 0, nil)
	voice := &Voice{src: &sourceState{format: adpcmFormat(1, 44100, align)}}

	blockSamples := (align + 16) * 2
	out := make([]int16, blockSamples)
	decodeMonoMSADPCM(voice, &Buffer{AudioData: block, PlayLength: uint32(blockSamples)}, 0, out, uint32(blockSamples))

	for i, s := range out {
		if s != 0 {
			t.Fatalf("out[%d] = %d, want 0", i, s)
		}
	}
}

func TestDecodeMonoMSADPCM_PreambleSamplesFirst(t *testing.T) {
	t.Parallel()

	const align = 8
	block := monoADPCMBlock(align, 0, 16, 1111, -2222, nil)
	voice := &Voice{src: &sourceState{format: adpcmFormat(1, 44100, align)}}

	out := make([]int16, 2)
	decodeMonoMSADPCM(voice, &Buffer{AudioData: block}, 0, out, 2)

	if out[0] != 1111 || out[1] != -2222 {
		t.Fatalf("warm-up samples = %d, %d, want 1111, -2222", out[0], out[1])
	}
}

func TestDecodeStereoMSADPCM_PreambleInterleave(t *testing.T) {
	t.Parallel()

	const align = 8
	block := stereoADPCMBlock(align, 0, 0, 16, 16, 100, 200, 300, 400, nil)
	voice := &Voice{src: &sourceState{format: adpcmFormat(2, 44100, align)}}

	out := make([]int16, 4)
	decodeStereoMSADPCM(voice, &Buffer{AudioData: block}, 0, out, 2)

	// sample2 pair first, then sample1 pair, L/R interleaved.
	for i, want := range []int16{300, 400, 100, 200} {
		if out[i] != want {
			t.Errorf("out[%d] = %d, want %d", i, out[i], want)
		}
	}
}

func TestDecodeMonoMSADPCM_NibbleArithmetic(t *testing.T) {
	t.Parallel()

	// predictor 0: Coeff1=256, Coeff2=0 -> predicted = sample1. First
	// nibble +1 with delta 16: out = sample1 + 16.
	const align = 8
	nibbles := make([]byte, align+15)
	nibbles[0] = 0x10 // high nibble +1, low nibble 0
	block := monoADPCMBlock(align, 0, 16, 1000, 500, nibbles)
	voice := &Voice{src: &sourceState{format: adpcmFormat(1, 44100, align)}}

	out := make([]int16, 4)
	decodeMonoMSADPCM(voice, &Buffer{AudioData: block}, 0, out, 4)

	if out[2] != 1016 {
		t.Errorf("first nibble sample = %d, want 1016", out[2])
	}
	// Second nibble 0: predicted = previous output, delta floored at 16.
	if out[3] != 1016 {
		t.Errorf("second nibble sample = %d, want 1016", out[3])
	}
}

func TestDecodeMonoMSADPCM_MidBlockWindow(t *testing.T) {
	t.Parallel()

	// Two identical blocks; a window starting mid first block must line up
	// with the same samples decoded from the start.
	const align = 8
	nibbles := make([]byte, align+15)
	for i := range nibbles {
		nibbles[i] = 0x31 // +3, +1 alternating
	}
	block := monoADPCMBlock(align, 0, 32, 600, -600, nibbles)
	data := append(append([]byte(nil), block...), block...)
	voice := &Voice{src: &sourceState{format: adpcmFormat(1, 44100, align)}}

	blockSamples := uint32((align + 16) * 2)
	buffer := &Buffer{AudioData: data, PlayLength: blockSamples * 2}

	full := make([]int16, blockSamples*2)
	decodeMonoMSADPCM(voice, buffer, 0, full, blockSamples*2)

	window := make([]int16, 10)
	decodeMonoMSADPCM(voice, buffer, 5, window, 10)

	for i := range window {
		if window[i] != full[5+i] {
			t.Errorf("window[%d] = %d, want %d", i, window[i], full[5+i])
		}
	}
}

func TestDecodeMonoMSADPCM_BadPredictorSilence(t *testing.T) {
	t.Parallel()

	const align = 8
	block := monoADPCMBlock(align, 9, 16, 1111, 2222, nil)
	voice := &Voice{src: &sourceState{format: adpcmFormat(1, 44100, align)}}

	blockSamples := uint32((align + 16) * 2)
	out := make([]int16, blockSamples)
	for i := range out {
		out[i] = 123
	}
	decodeMonoMSADPCM(voice, &Buffer{AudioData: block}, 0, out, blockSamples)

	for i, s := range out {
		if s != 0 {
			t.Fatalf("out[%d] = %d, want 0 for out-of-range predictor", i, s)
		}
	}
}

func TestDecodeMonoMSADPCM_ShortBufferSilence(t *testing.T) {
	t.Parallel()

	const align = 8
	voice := &Voice{src: &sourceState{format: adpcmFormat(1, 44100, align)}}

	out := make([]int16, 8)
	for i := range out {
		out[i] = 77
	}
	decodeMonoMSADPCM(voice, &Buffer{AudioData: make([]byte, 3)}, 0, out, 8)

	for i, s := range out {
		if s != 0 {
			t.Fatalf("out[%d] = %d, want 0 for truncated buffer", i, s)
		}
	}
}
