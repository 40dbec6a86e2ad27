// SPDX-License-Identifier: EPL-2.0

package platform

import "github.com/ik5/mixdown/utils"

// Resampler converts interleaved float32 audio between sample rates with
// cubic interpolation, keeping a 4-frame history across calls so per-tick
// pushes splice without seams. Includes basic anti-aliasing filtering when
// downsampling.
type Resampler struct {
	srcRate  float64
	dstRate  float64
	ratio    float64 // srcRate / dstRate - source frames per output frame
	channels int

	// History ring for cubic interpolation:
	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2
	frames [4][]float32
	primed int // frames of history filled so far

	// Position between frames[1] and frames[2], in source frames
	pos float64

	// One-pole low-pass state for anti-aliasing (when downsampling)
	filterState []float32
	filterAlpha float32
	useFilter   bool
}

// NewResampler builds a resampler for interleaved audio with the given
// channel count. Equal rates turn Resample into a plain copy.
func NewResampler(srcRate, dstRate, channels int) *Resampler {
	ratio := float64(srcRate) / float64(dstRate)

	// Enable simple low-pass filter when downsampling
	useFilter := ratio > 1.0
	var filterAlpha float32
	if useFilter {
		// One-pole low-pass; a proper FIR would be better but this keeps
		// the fold-back audible artifacts down
		filterAlpha = 0.5
	}

	r := &Resampler{
		srcRate:     float64(srcRate),
		dstRate:     float64(dstRate),
		ratio:       ratio,
		channels:    channels,
		useFilter:   useFilter,
		filterAlpha: filterAlpha,
		filterState: make([]float32, channels),
	}
	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}
	return r
}

// Channels reports the interleave width both buffers must share.
func (r *Resampler) Channels() int { return r.channels }

// Reset drops the interpolation history and filter state.
func (r *Resampler) Reset() {
	r.pos = 0
	r.primed = 0
	for i := range r.frames {
		clear(r.frames[i])
	}
	clear(r.filterState)
}

// pushFrame shifts the history ring and appends one source frame.
func (r *Resampler) pushFrame(frame []float32) {
	copy(r.frames[0], r.frames[1])
	copy(r.frames[1], r.frames[2])
	copy(r.frames[2], r.frames[3])
	copy(r.frames[3], frame)

	if r.useFilter {
		for c := 0; c < r.channels; c++ {
			// y[n] = alpha * x[n] + (1-alpha) * y[n-1]
			r.frames[3][c] = r.filterAlpha*r.frames[3][c] +
				(1-r.filterAlpha)*r.filterState[c]
			r.filterState[c] = r.frames[3][c]
		}
	}
	if r.primed < 4 {
		r.primed++
	}
}

// Resample consumes src and writes up to len(dst) samples at the output
// rate, returning the sample count produced (a multiple of the channel
// count). Equal rates copy through untouched. The first call produces a
// frame or two less than asked while the history primes; per-tick callers
// absorb that as initial latency.
func (r *Resampler) Resample(src, dst []float32) int {
	if r.channels == 0 || len(dst) == 0 {
		return 0
	}

	if r.srcRate == r.dstRate {
		n := copy(dst, src)
		return n - n%r.channels
	}

	srcFrames := len(src) / r.channels
	dstFrames := len(dst) / r.channels
	consumed := 0 // source frames pushed into the history
	written := 0

	for written < dstFrames {
		// Advance the ring until pos lands between frames[1] and frames[2]
		for r.pos >= 1.0 && consumed < srcFrames {
			r.pos--
			r.pushFrame(src[consumed*r.channels : (consumed+1)*r.channels])
			consumed++
		}
		if r.pos >= 1.0 || r.primed < 2 {
			if consumed >= srcFrames {
				break
			}
			r.pushFrame(src[consumed*r.channels : (consumed+1)*r.channels])
			consumed++
			continue
		}

		alpha := float32(r.pos)
		for c := 0; c < r.channels; c++ {
			dst[written*r.channels+c] = utils.CubicInterpolate(
				r.frames[0][c], r.frames[1][c], r.frames[2][c], r.frames[3][c],
				alpha)
		}
		written++
		r.pos += r.ratio
	}

	return written * r.channels
}
