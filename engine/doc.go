// SPDX-License-Identifier: EPL-2.0

// Package engine implements the processing core of an XAudio2-model audio
// mixing engine.
//
// Clients build a voice graph: source voices consume queues of encoded
// buffers (PCM8, PCM16, MSADPCM, or packet codecs such as WMA/XMA behind a
// registered PacketCodec), submix voices accumulate upstream sends, and a
// single master voice writes the engine output. Once per tick, Update
// decodes, resamples and mixes every active source into its sends, then
// runs submixes in ascending processing-stage order.
//
// The engine mutates voice state only inside Update, on the caller's
// goroutine. Serializing Update against client API mutation is the caller's
// job (the driver package wraps both in a mutex).
//
// # Quick Start
//
//	eng, _ := engine.NewEngine(2, 48000, 480)
//	voice, _ := eng.CreateSourceVoice(format, 0, nil)
//	voice.SubmitBuffer(engine.Buffer{AudioData: data, Flags: engine.EndOfStream}, nil)
//	voice.Start()
//	eng.StartEngine()
//
//	out := make([]float32, 2*480)
//	for {
//		eng.Update(out) // out now holds one tick of interleaved float32
//	}
package engine
