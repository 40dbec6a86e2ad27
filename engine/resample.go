// SPDX-License-Identifier: EPL-2.0

package engine

// resamplePCM linearly interpolates toResample output frames from the int16
// decode cache into out, normalizing to float32 in [-1, 1). The phase
// accumulator advances by the voice's fixed-point step per output frame;
// only the integer carry moves the read index, so slow rates may sit on the
// same frame pair for several outputs. The decode cache always holds
// extraDecodePadding frames past the requested window, which covers the
// i+1 lookahead of the interpolation.
func (v *Voice) resamplePCM(out []float32, toResample uint32) {
	decodeCache := v.src.decodeCache
	cur := v.src.resampleOffset & fixedFractionMask
	if v.src.format.Channels == 2 {
		idx := uint32(0)
		o := 0
		for i := uint32(0); i < toResample; i++ {
			frac := fixedToFloat64(cur)
			out[o] = float32(float64(decodeCache[idx])+
				float64(int32(decodeCache[idx+2])-int32(decodeCache[idx]))*frac) / 32768.0
			out[o+1] = float32(float64(decodeCache[idx+1])+
				float64(int32(decodeCache[idx+3])-int32(decodeCache[idx+1]))*frac) / 32768.0
			o += 2

			v.src.resampleOffset += v.src.resampleStep
			cur += v.src.resampleStep
			idx += uint32(cur>>fixedPrecision) * 2
			cur &= fixedFractionMask
		}
	} else {
		idx := uint32(0)
		for i := uint32(0); i < toResample; i++ {
			out[i] = float32(float64(decodeCache[idx])+
				float64(int32(decodeCache[idx+1])-int32(decodeCache[idx]))*
					fixedToFloat64(cur)) / 32768.0

			v.src.resampleOffset += v.src.resampleStep
			cur += v.src.resampleStep
			idx += uint32(cur >> fixedPrecision)
			cur &= fixedFractionMask
		}
	}
}
