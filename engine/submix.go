// SPDX-License-Identifier: EPL-2.0

package engine

import "github.com/ik5/mixdown/platform"

// mixSubmix drains a submix's input accumulator into its sends: platform
// resample to the destination rate, apply channel and master volumes, then
// the same clamped send accumulation sources use. The accumulator is zeroed
// at the end either way, ready for the next tick's upstream writes.
func (v *Voice) mixSubmix() {
	mix := v.mix

	if len(v.sends) == 0 {
		clear(mix.inputCache[:mix.inputSamples])
		return
	}

	outputRate := v.outputRateFor()
	if mix.resampler == nil || mix.resamplerRate != outputRate {
		mix.resampler = platform.NewResampler(
			int(mix.inputSampleRate), int(outputRate), int(mix.inputChannels))
		mix.resamplerRate = outputRate
	}

	outputSamples := uint32(uint64(v.engine.updateSize) * uint64(outputRate) /
		uint64(v.engine.master.master.inputSampleRate)) * mix.inputChannels
	if uint32(len(mix.outputResampleCache)) < outputSamples {
		mix.outputResampleCache = make([]float32, outputSamples)
	}

	resampled := uint32(mix.resampler.Resample(
		mix.inputCache[:mix.inputSamples],
		mix.outputResampleCache[:outputSamples]))

	// Submix volumes are applied before the send matrices.
	frames := resampled / mix.inputChannels
	for i := uint32(0); i < frames; i++ {
		for ci := uint32(0); ci < mix.inputChannels; ci++ {
			mix.outputResampleCache[i*mix.inputChannels+ci] *=
				v.channelVolume[ci] * v.volume
		}
	}

	// TODO: effects, filters

	for s := range v.sends {
		out := v.sends[s].Target
		stream, outChannels := sendStream(out)
		coefficients := v.sends[s].Coefficients

		for j := uint32(0); j < frames; j++ {
			for co := uint32(0); co < outChannels; co++ {
				for ci := uint32(0); ci < mix.inputChannels; ci++ {
					acc := stream[j*outChannels+co] +
						mix.outputResampleCache[j*mix.inputChannels+ci]*
							coefficients[co*mix.inputChannels+ci]
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

	clear(mix.inputCache[:mix.inputSamples])
}
