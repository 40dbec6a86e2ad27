// SPDX-License-Identifier: EPL-2.0

package engine

// outputRateFor resolves the rate a source or submix resamples toward: the
// first send destination's input rate, or the master rate with no sends.
func (v *Voice) outputRateFor() uint32 {
	out := v.engine.master
	if len(v.sends) > 0 {
		out = v.sends[0].Target
	}
	if out.kind == voiceMaster {
		return out.master.inputSampleRate
	}
	return out.mix.inputSampleRate
}

// mixSource runs the per-tick protocol for one active source voice:
// recompute the fixed-point step if the pitch ratio changed, decode and
// resample until the tick's output frames are filled or the buffer queue
// drains, then accumulate the float cache into every send.
func (v *Voice) mixSource() {
	e := v.engine
	src := v.src

	outputRate := v.outputRateFor()
	if src.resampleFreqRatio != src.freqRatio {
		stepd := float64(src.freqRatio) *
			float64(src.format.SamplesPerSec) / float64(outputRate)
		src.resampleStep = doubleToFixed(stepd)
		src.resampleFreqRatio = src.freqRatio
	}

	// Last call for buffer data.
	if src.callback != nil && src.callback.OnVoiceProcessingPassStart != nil {
		src.callback.OnVoiceProcessingPassStart(src.decodeSamples * 2)
	}

	outputSamples := uint32(uint64(e.updateSize) * uint64(outputRate) /
		uint64(e.master.master.inputSampleRate))
	channels := uint32(src.format.Channels)
	if need := outputSamples * channels; uint32(len(src.resampleCache)) < need {
		src.resampleCache = make([]float32, need)
	}

	mixed := uint32(0)
	resampleIdx := uint32(0)
	for mixed < outputSamples && src.bufferList != nil {
		// Frames of source data this pass needs: fixed-point product of
		// the remaining output and the step, rounded up past the current
		// fractional cursor.
		toDecode := uint64(outputSamples-mixed) * src.resampleStep
		toDecode += src.curBufferOffsetDec + fixedFractionMask
		toDecode >>= fixedPrecision

		resetOffset := v.decodeBuffers(&toDecode)

		// Invert: output frames the produced input exactly covers, capped
		// at the room left this tick.
		toResample := toDecode << fixedPrecision
		toResample -= src.curBufferOffsetDec
		toResample /= src.resampleStep
		if toResample > uint64(outputSamples-mixed) {
			toResample = uint64(outputSamples - mixed)
		}

		if src.resampleStep == fixedOne {
			// Unity step degenerates to format conversion.
			n := uint32(toResample) * channels
			for i := uint32(0); i < n; i++ {
				src.resampleCache[resampleIdx+i] = float32(src.decodeCache[i]) / 32768.0
			}
			src.resampleOffset += toResample << fixedPrecision
		} else {
			v.resamplePCM(src.resampleCache[resampleIdx:], uint32(toResample))
		}
		resampleIdx += uint32(toResample) * channels

		if src.bufferList != nil {
			src.curBufferOffsetDec += toResample * src.resampleStep
			src.curBufferOffset += uint32(src.curBufferOffsetDec >> fixedPrecision)
			src.curBufferOffset -= resetOffset
			src.curBufferOffsetDec &= fixedFractionMask
		} else {
			src.curBufferOffsetDec = 0
			src.curBufferOffset = 0
		}

		mixed += uint32(toResample)
	}

	if mixed > 0 && len(v.sends) > 0 {
		// TODO: effects, filters
		for i := range v.sends {
			out := v.sends[i].Target
			stream, outChannels := sendStream(out)
			coefficients := v.sends[i].Coefficients

			for j := uint32(0); j < mixed; j++ {
				for co := uint32(0); co < outChannels; co++ {
					for ci := uint32(0); ci < channels; ci++ {
						acc := stream[j*outChannels+co] +
							src.resampleCache[j*channels+ci]*
								v.channelVolume[ci]*
								v.volume*
								coefficients[co*channels+ci]
						if acc > MaxVolumeLevel {
							acc = MaxVolumeLevel
						} else if acc < -MaxVolumeLevel {
							acc = -MaxVolumeLevel
						}
						stream[j*outChannels+co] = acc
					}
				}
			}
		}
	}

	if src.callback != nil && src.callback.OnVoiceProcessingPassEnd != nil {
		src.callback.OnVoiceProcessingPassEnd()
	}
}
