// SPDX-License-Identifier: EPL-2.0

package engine

// xwmaState adapts a packet-framed, stateful codec to the random-access
// (buffer, curOffset, cache, samples) contract the block decoders share.
// It owns an encoded-packet cursor into the current buffer and a decoded
// frame staging cache, and reconciles the resampler's cursor against its
// own decode position by local rewind or packet-level seek.
type xwmaState struct {
	codec PacketCodec

	encOffset uint32 // byte position in the encoded stream
	decOffset uint32 // sample position the core believes was produced

	// Staging copy for the final packets of a buffer, when the client data
	// does not carry the codec's required trailing padding. Grown only.
	padding []byte

	// One decoded frame, interleaved float32. convertOffset..convertSamples
	// brackets the unread region, in frames.
	convertCache   []float32
	convertSamples uint32
	convertOffset  uint32
}

func newXWMAState(format *WaveFormat) (*xwmaState, error) {
	factory, ok := lookupCodec(format.FormatTag)
	if !ok {
		return nil, ErrUnsupportedFormat
	}
	codec, err := factory(format)
	if err != nil {
		return nil, ErrUnsupportedFormat
	}
	return &xwmaState{codec: codec}, nil
}

func (w *xwmaState) close() {
	if w.codec != nil {
		w.codec.Close()
		w.codec = nil
	}
}

// reset rewinds the stream cursors, for a fresh buffer queue.
func (w *xwmaState) reset() {
	w.encOffset = 0
	w.decOffset = 0
	w.convertSamples = 0
	w.convertOffset = 0
}

// fillConvertCache pulls the next decoded frame, feeding packets of
// BlockAlign bytes whenever the codec asks for more. Near the end of the
// buffer the packet is staged into the padding buffer with the trailing
// padding zeroed, because the client's allocation ends where its data does.
func (v *Voice) fillConvertCache(buffer *Buffer) error {
	w := v.src.wma
	blockAlign := uint32(v.src.format.BlockAlign)
	audioBytes := uint32(len(buffer.AudioData))

	for {
		frame, err := w.codec.ReceiveFrame()
		if err == nil {
			v.stageFrame(frame)
			return nil
		}
		if err != ErrNeedMoreData {
			return err
		}

		if w.encOffset >= audioBytes {
			// Buffer exhausted; leave the cache empty for the caller.
			w.convertSamples = 0
			w.convertOffset = 0
			return nil
		}

		codecPadding := uint32(w.codec.RequiredPadding())
		packet := buffer.AudioData[w.encOffset:]
		if w.encOffset+blockAlign+codecPadding > audioBytes {
			remain := audioBytes - w.encOffset
			need := remain + codecPadding
			if need < blockAlign {
				need = blockAlign
			}
			if uint32(len(w.padding)) < need {
				w.padding = make([]byte, need)
			}
			copy(w.padding, buffer.AudioData[w.encOffset:])
			clear(w.padding[remain:])
			packet = w.padding
		}
		if len(packet) > int(blockAlign) {
			packet = packet[:blockAlign]
		}

		if err := w.codec.SendPacket(packet); err != nil {
			return err
		}
		w.encOffset += blockAlign
	}
}

// stageFrame copies one decoded frame into the convert cache, transposing
// planar layouts to sample-major interleave.
func (v *Voice) stageFrame(frame CodecFrame) {
	w := v.src.wma
	channels := int(v.src.format.Channels)
	total := frame.Frames * channels

	if len(w.convertCache) < total {
		w.convertCache = make([]float32, total)
	}

	if frame.Planar {
		for s := 0; s < frame.Frames; s++ {
			for c := 0; c < channels; c++ {
				w.convertCache[s*channels+c] = frame.Data[c][s]
			}
		}
	} else {
		copy(w.convertCache[:total], frame.Data[0])
	}

	w.convertSamples = uint32(frame.Frames)
	w.convertOffset = 0
}

// decodeXWMA serves a sample window from the packet codec through the
// shared int16 decode-cache contract. Cursor mismatches are reconciled
// first: a small backward delta still inside the cached frame rewinds
// locally; anything else seeks at packet granularity through the buffer's
// cumulative decoded-byte table.
func decodeXWMA(v *Voice, b *Buffer, curOffset uint32, out []int16, samples uint32) {
	w := v.src.wma
	channels := uint32(v.src.format.Channels)
	sampleSize := channels * 4

	failed := false
	reseek := false
	if curOffset < w.decOffset {
		// Behind means the mixer re-requested lookback after a fractional
		// correction; rewinding inside the cached frame is enough.
		delta := w.decOffset - curOffset
		if w.convertOffset >= delta {
			w.convertOffset -= delta
			w.decOffset = curOffset
		} else {
			reseek = true
		}
	} else if curOffset > w.decOffset {
		reseek = true
	}

	if reseek {
		table := v.src.bufferList.wma.DecodedPacketCumulativeBytes
		byteOffset := curOffset * sampleSize

		// First packet whose cumulative decoded bytes cover the target.
		packetIdx := len(table) - 1
		for packetIdx > 0 && table[packetIdx-1] > byteOffset {
			packetIdx--
		}
		var cumulative uint32
		if packetIdx > 0 {
			cumulative = table[packetIdx-1]
		}

		w.encOffset = uint32(packetIdx) * uint32(v.src.format.BlockAlign)
		w.convertSamples = 0
		w.convertOffset = 0
		if err := v.fillConvertCache(b); err != nil {
			v.reportDecodeError(b, err)
			failed = true
		} else {
			w.convertOffset = (byteOffset - cumulative) / sampleSize
		}
		w.decOffset = curOffset
	}

	done := uint32(0)
	for !failed && done < samples {
		if w.convertOffset >= w.convertSamples {
			if err := v.fillConvertCache(b); err != nil {
				v.reportDecodeError(b, err)
				break
			}
		}

		available := w.convertSamples - w.convertOffset
		if available == 0 {
			break
		}

		todo := available
		if todo > samples-done {
			todo = samples - done
		}
		src := w.convertCache[w.convertOffset*channels:]
		dst := out[done*channels:]
		for i := uint32(0); i < todo*channels; i++ {
			f := src[i] * 32768.0
			if f > 32767.0 {
				f = 32767.0
			} else if f < -32768.0 {
				f = -32768.0
			}
			dst[i] = int16(f)
		}

		done += todo
		w.convertOffset += todo
	}

	// Whatever could not be served plays as silence; the cursor still
	// advances so downstream callbacks keep their timing.
	if done < samples {
		clear(out[done*channels : samples*channels])
	}
	w.decOffset += samples
}

// reportDecodeError logs a decoder-internal failure and hands it to the
// voice callback; the voice keeps running.
func (v *Voice) reportDecodeError(b *Buffer, err error) {
	v.engine.logf("mixdown: packet codec error: %v", err)
	if v.src.callback != nil && v.src.callback.OnVoiceError != nil {
		v.src.callback.OnVoiceError(b.Context, err)
	}
}
