// SPDX-License-Identifier: EPL-2.0

// Package wav loads WAV files into engine wave formats and buffers, and
// writes rendered PCM back out.
//
// Load keeps the encoded data as stored (the engine decodes it per tick),
// so MSADPCM files play without a transcode step. The one exception is
// 8-bit PCM, whose unsigned on-disk samples are flipped to the signed form
// the engine decodes. Use it like:
//
//	file, _ := os.Open("audio.wav")
//	parsed, err := wav.Load(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	voice, _ := eng.CreateSourceVoice(parsed.Format, 0, nil)
//	voice.SubmitBuffer(parsed.Buffer(), nil)
//
// WritePCM16 is the counterpart for offline renders:
//
//	out, _ := os.Create("render.wav")
//	wav.WritePCM16(out, 48000, 2, samples)
//
// Chunk walking uses github.com/go-audio/riff; encoding uses
// github.com/go-audio/wav.
package wav
