// SPDX-License-Identifier: EPL-2.0

// Package mixdown provides an XAudio2-model audio mixing engine for Go
// applications.
//
// The engine subpackage is the core: source voices decode queued PCM8,
// PCM16, MSADPCM or packet-codec (WMA/XMA) buffers, resample them with a
// drift-free fixed-point linear resampler, and mix through submix voices
// into a master output, once per tick.
//
// # Quick Start
//
// The simplest way to use the engine is the offline render helper:
//
//	parsed, _ := wav.Load(file)
//	samples, err := mixdown.RenderBuffer(parsed.Format, parsed.Buffer(), nil, 48000, 2, 480)
//
//	// samples now holds the whole stream mixed to 48kHz stereo float32
//
// # Live Playback
//
// For real-time output, hand the engine to the driver package:
//
//	eng, _ := engine.NewEngine(2, 48000, 480)
//	voice, _ := eng.CreateSourceVoice(parsed.Format, 0, nil)
//	voice.SubmitBuffer(parsed.Buffer(), nil)
//	voice.Start()
//	eng.StartEngine()
//
//	player, _ := driver.NewPlayer(eng)
//	player.Play()
//
// # Voice Graphs
//
// Sources can route through submix voices for group volume and staged
// mixing:
//
//	drums, _ := eng.CreateSubmixVoice(2, 48000, 0)
//	voice.SetOutputVoices(engine.Send{Target: drums})
//	drums.SetVolume(0.8)
//
// # Format Loaders
//
// The formats subpackages build engine buffers from WAV (including
// MSADPCM passthrough), MP3, Ogg Vorbis and AIFF files.
//
// See the engine subpackage for the full mixing semantics.
package mixdown
