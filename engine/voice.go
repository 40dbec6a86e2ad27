// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"math"

	"github.com/ik5/mixdown/platform"
)

// Volume and frequency-ratio limits, matching the XAudio2 envelope.
const (
	MaxVolumeLevel   = float32(1 << 24)
	MinFreqRatio     = float32(1.0 / 1024.0)
	DefaultFreqRatio = float32(2.0)
	MaxFreqRatio     = float32(1024.0)
)

type voiceType int

const (
	voiceSource voiceType = iota
	voiceSubmix
	voiceMaster
)

// Send routes a voice's output into Target, weighting every (out, in)
// channel pair with Coefficients[out*inChannels+in]. A nil matrix gets
// DefaultMatrix at connect time.
type Send struct {
	Target       *Voice
	Coefficients []float32
}

// Voice is the common record shared by the source, submix and master
// variants; exactly one of src, mix, master is set.
type Voice struct {
	engine        *Engine
	kind          voiceType
	channels      uint32
	volume        float32
	channelVolume []float32
	sends         []Send

	src    *sourceState
	mix    *submixState
	master *masterState
}

// decodeFunc writes samples decoded frames (times channels int16 values)
// into out, reading the encoded region of b starting at curOffset source
// samples past PlayBegin.
type decodeFunc func(v *Voice, b *Buffer, curOffset uint32, out []int16, samples uint32)

type sourceState struct {
	format       WaveFormat
	active       bool
	callback     *VoiceCallback
	maxFreqRatio float32
	freqRatio    float32

	bufferList         *bufferEntry
	curBufferOffset    uint32
	curBufferOffsetDec uint64

	resampleStep      uint64
	resampleOffset    uint64
	resampleFreqRatio float32

	decode        decodeFunc
	decodeSamples uint32 // decode cache capacity in frames, padding included
	decodeCache   []int16
	resampleCache []float32

	wma *xwmaState
}

type submixState struct {
	inputChannels   uint32
	inputSampleRate uint32
	processingStage uint32

	inputSamples        uint32 // inputCache length in float32 values
	inputCache          []float32
	outputResampleCache []float32

	resampler     *platform.Resampler
	resamplerRate uint32
}

type masterState struct {
	inputChannels   uint32
	inputSampleRate uint32

	// output borrows the tick's destination buffer; valid only while
	// Update runs.
	output []float32
}

func newVoice(e *Engine, kind voiceType, channels uint32) *Voice {
	v := &Voice{
		engine:        e,
		kind:          kind,
		channels:      channels,
		volume:        1.0,
		channelVolume: make([]float32, channels),
	}
	for i := range v.channelVolume {
		v.channelVolume[i] = 1.0
	}
	return v
}

// CreateSourceVoice builds a voice that plays client-submitted buffers in
// the given format. maxFreqRatio bounds SetFrequencyRatio and sizes the
// decode scratch; zero selects DefaultFreqRatio. Unsupported or unregistered
// formats fail with ErrUnsupportedFormat and create nothing.
func (e *Engine) CreateSourceVoice(format WaveFormat, maxFreqRatio float32, callback *VoiceCallback) (*Voice, error) {
	if format.Channels < 1 || format.Channels > 2 || format.SamplesPerSec == 0 {
		return nil, ErrUnsupportedFormat
	}
	decode, err := selectDecoder(&format)
	if err != nil {
		return nil, err
	}

	if maxFreqRatio <= 0 {
		maxFreqRatio = DefaultFreqRatio
	}
	if maxFreqRatio > MaxFreqRatio {
		maxFreqRatio = MaxFreqRatio
	}

	v := newVoice(e, voiceSource, uint32(format.Channels))
	v.src = &sourceState{
		format:       format,
		callback:     callback,
		maxFreqRatio: maxFreqRatio,
		freqRatio:    1.0,
		decode:       decode,
	}

	switch format.FormatTag {
	case FormatWMAudio2, FormatWMAudio3, FormatXMAudio2:
		wma, err := newXWMAState(&format)
		if err != nil {
			return nil, err
		}
		v.src.wma = wma
	}

	// Worst-case frames one tick can pull at the highest pitch, plus the
	// decode overrun padding. Grown later if a faster send rate needs more.
	masterRate := e.master.master.inputSampleRate
	frames := uint32(math.Ceil(
		float64(e.updateSize) * float64(maxFreqRatio) *
			float64(format.SamplesPerSec) / float64(masterRate),
	)) + extraDecodePadding
	v.src.decodeSamples = frames
	v.src.decodeCache = make([]int16, frames*uint32(format.Channels))
	v.src.resampleCache = make([]float32, e.updateSize*uint32(format.Channels))

	v.sends = []Send{{Target: e.master, Coefficients: DefaultMatrix(v.channels, e.master.master.inputChannels)}}
	e.sources = append(e.sources, v)
	return v, nil
}

// CreateSubmixVoice builds a fan-in voice. Submixes run after all sources,
// in ascending processingStage order; a submix may only send to voices of a
// strictly greater stage.
func (e *Engine) CreateSubmixVoice(inputChannels, inputSampleRate, processingStage uint32) (*Voice, error) {
	if inputChannels < 1 || inputSampleRate == 0 {
		return nil, ErrUnsupportedFormat
	}
	v := newVoice(e, voiceSubmix, inputChannels)

	masterRate := e.master.master.inputSampleRate
	inputFrames := uint32(uint64(e.updateSize) * uint64(inputSampleRate) / uint64(masterRate))
	v.mix = &submixState{
		inputChannels:   inputChannels,
		inputSampleRate: inputSampleRate,
		processingStage: processingStage,
		inputSamples:    inputFrames * inputChannels,
		inputCache:      make([]float32, inputFrames*inputChannels),
	}

	v.sends = []Send{{Target: e.master, Coefficients: DefaultMatrix(inputChannels, e.master.master.inputChannels)}}
	e.submixes = append(e.submixes, v)
	if processingStage+1 > e.submixStages {
		e.submixStages = processingStage + 1
	}
	return v, nil
}

// DestroyVoice unlinks the voice from the engine and releases any codec
// state. Destroying the master voice is not supported; destroy the engine.
func (v *Voice) DestroyVoice() {
	e := v.engine
	switch v.kind {
	case voiceSource:
		for i, s := range e.sources {
			if s == v {
				e.sources = append(e.sources[:i], e.sources[i+1:]...)
				break
			}
		}
		if v.src.wma != nil {
			v.src.wma.close()
		}
	case voiceSubmix:
		for i, s := range e.submixes {
			if s == v {
				e.submixes = append(e.submixes[:i], e.submixes[i+1:]...)
				break
			}
		}
	}
}

// Start marks a source voice active; the next tick picks it up.
func (v *Voice) Start() error {
	if v.kind != voiceSource {
		return ErrNotSourceVoice
	}
	v.src.active = true
	return nil
}

// Stop deactivates a source voice between ticks. Queued buffers stay put.
func (v *Voice) Stop() error {
	if v.kind != voiceSource {
		return ErrNotSourceVoice
	}
	v.src.active = false
	return nil
}

// SetFrequencyRatio adjusts playback pitch, clamped to
// [MinFreqRatio, maxFreqRatio]. The fixed-point step is recomputed lazily
// on the next mix pass.
func (v *Voice) SetFrequencyRatio(ratio float32) error {
	if v.kind != voiceSource {
		return ErrNotSourceVoice
	}
	if ratio < MinFreqRatio {
		ratio = MinFreqRatio
	}
	if ratio > v.src.maxFreqRatio {
		ratio = v.src.maxFreqRatio
	}
	v.src.freqRatio = ratio
	return nil
}

// FrequencyRatio reports the current (clamped) pitch ratio.
func (v *Voice) FrequencyRatio() float32 {
	if v.kind != voiceSource {
		return 1.0
	}
	return v.src.freqRatio
}

// SetVolume sets the master volume scalar applied on top of per-channel
// volumes.
func (v *Voice) SetVolume(volume float32) {
	v.volume = volume
}

// Volume reports the master volume scalar.
func (v *Voice) Volume() float32 {
	return v.volume
}

// SetChannelVolumes sets one gain per input channel.
func (v *Voice) SetChannelVolumes(volumes []float32) error {
	if uint32(len(volumes)) != v.channels {
		return ErrChannelCount
	}
	copy(v.channelVolume, volumes)
	return nil
}

// SetOutputVoices replaces the send list. A nil coefficient matrix gets
// DefaultMatrix for the channel pair. Submix sends must target a strictly
// greater processing stage so the staged tick ordering stays acyclic.
func (v *Voice) SetOutputVoices(sends ...Send) error {
	if v.kind == voiceMaster {
		return ErrNotSourceVoice
	}
	built := make([]Send, len(sends))
	for i, s := range sends {
		target := s.Target
		if target == nil {
			target = v.engine.master
		}
		if v.kind == voiceSubmix && target.kind == voiceSubmix &&
			target.mix.processingStage <= v.mix.processingStage {
			return ErrStageOrder
		}
		coeff := s.Coefficients
		outChannels := target.inputChannels()
		if coeff == nil {
			coeff = DefaultMatrix(v.channels, outChannels)
		} else if uint32(len(coeff)) != outChannels*v.channels {
			return ErrMatrixSize
		}
		built[i] = Send{Target: target, Coefficients: coeff}
	}
	v.sends = built
	return nil
}

// SetOutputMatrix replaces the coefficient matrix of the send aimed at
// target.
func (v *Voice) SetOutputMatrix(target *Voice, matrix []float32) error {
	if target == nil {
		target = v.engine.master
	}
	for i := range v.sends {
		if v.sends[i].Target != target {
			continue
		}
		if uint32(len(matrix)) != target.inputChannels()*v.channels {
			return ErrMatrixSize
		}
		v.sends[i].Coefficients = matrix
		return nil
	}
	return ErrNotInSends
}

// inputChannels is the channel count a send into this voice must match.
func (v *Voice) inputChannels() uint32 {
	switch v.kind {
	case voiceSubmix:
		return v.mix.inputChannels
	case voiceMaster:
		return v.master.inputChannels
	}
	return v.channels
}

// sendStream resolves the float stream and channel count a send writes to.
func sendStream(out *Voice) ([]float32, uint32) {
	if out.kind == voiceMaster {
		return out.master.output, out.master.inputChannels
	}
	return out.mix.inputCache, out.mix.inputChannels
}
