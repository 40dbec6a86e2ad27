// SPDX-License-Identifier: EPL-2.0

package engine

// extraDecodePadding frames are decoded past every requested window so the
// resampler's lookahead never reads stale cache. The overrun, and the
// int16-stride zero fill below, are part of the decode-cache contract;
// consumers size for it.
const extraDecodePadding = 2

// decodeBuffers drives the voice's decoder across the (possibly looping)
// buffer queue until *toDecode frames are produced or the queue empties.
// On return *toDecode holds the frames actually produced minus the padding,
// and the result is the total samples rewound by loop resets this call, for
// the mixer to subtract from the integer cursor.
func (v *Voice) decodeBuffers(toDecode *uint64) uint32 {
	var decoded, resetOffset uint32

	*toDecode += extraDecodePadding

	channels := uint32(v.src.format.Channels)
	if need := uint32(*toDecode) * channels; uint32(len(v.src.decodeCache)) < need {
		grown := make([]int16, need)
		copy(grown, v.src.decodeCache)
		v.src.decodeCache = grown
		v.src.decodeSamples = uint32(*toDecode)
	}

	entry := v.src.bufferList
	for uint64(decoded) < *toDecode && entry != nil {
		buffer := &entry.buffer
		decoding := uint32(*toDecode) - decoded

		if v.src.curBufferOffset == buffer.PlayBegin &&
			v.src.callback != nil && v.src.callback.OnBufferStart != nil {
			v.src.callback.OnBufferStart(buffer.Context)
		}

		// While looping, the loop region end is the buffer end.
		end := buffer.PlayLength
		if buffer.LoopCount > 0 && buffer.LoopLength > 0 {
			end = buffer.LoopBegin + buffer.LoopLength
		}
		endRead := end - v.src.curBufferOffset
		if endRead > decoding {
			endRead = decoding
		}

		v.src.decode(v, buffer, v.src.curBufferOffset,
			v.src.decodeCache[decoded*channels:], endRead)

		if endRead < decoding {
			resetOffset += endRead
			if buffer.LoopCount > 0 {
				v.src.curBufferOffset = buffer.LoopBegin
				if buffer.LoopCount < LoopInfinite {
					buffer.LoopCount--
				}
				if v.src.callback != nil && v.src.callback.OnLoopEnd != nil {
					v.src.callback.OnLoopEnd(buffer.Context)
				}
			} else {
				// With the stream done there is no fraction left to carry.
				if buffer.Flags&EndOfStream != 0 {
					v.src.curBufferOffsetDec = 0
				}

				if v.src.callback != nil {
					if v.src.callback.OnBufferEnd != nil {
						v.src.callback.OnBufferEnd(buffer.Context)
					}
					if buffer.Flags&EndOfStream != 0 &&
						v.src.callback.OnStreamEnd != nil {
						v.src.callback.OnStreamEnd()
					}
				}

				v.src.bufferList = entry.next
				entry = v.src.bufferList
				if entry != nil {
					v.src.curBufferOffset = entry.buffer.PlayBegin
				} else {
					// Queue drained mid-request: zero the rest of this
					// decode window, padding included, as frames times
					// channels int16 values.
					start := (decoded + endRead) * channels
					clear(v.src.decodeCache[start : start+(decoding-endRead)*channels])
					// The zero fill counts as produced, so the stream's
					// final frames still reach the resampler instead of
					// being eaten by the padding.
					decoded += decoding - endRead
				}
			}
		}

		decoded += endRead
	}

	*toDecode = uint64(decoded) - extraDecodePadding
	return resetOffset
}
