// SPDX-License-Identifier: EPL-2.0

package engine

import "log"

// Engine owns the voice graph and runs the per-tick mixing pipeline. All
// methods must be serialized with Update by the caller; the engine itself
// holds no locks and has no internal suspension points.
type Engine struct {
	updateSize uint32 // frames per tick at the master rate

	active       bool
	master       *Voice
	sources      []*Voice
	submixes     []*Voice
	submixStages uint32
	callbacks    []*EngineCallback
	logger       *log.Logger
}

// NewEngine builds an engine with its master voice. channels and sampleRate
// describe the master output; samplesPerTick is the frame count every
// Update produces.
func NewEngine(channels, sampleRate, samplesPerTick uint32) (*Engine, error) {
	if channels < 1 || sampleRate == 0 || samplesPerTick == 0 {
		return nil, ErrUnsupportedFormat
	}
	e := &Engine{updateSize: samplesPerTick}
	master := newVoice(e, voiceMaster, channels)
	master.master = &masterState{
		inputChannels:   channels,
		inputSampleRate: sampleRate,
	}
	e.master = master
	return e, nil
}

// MasterVoice exposes the terminal voice for routing and volume control.
func (e *Engine) MasterVoice() *Voice { return e.master }

// SamplesPerTick reports the frame count each Update produces.
func (e *Engine) SamplesPerTick() uint32 { return e.updateSize }

// MasterChannels reports the master output channel count.
func (e *Engine) MasterChannels() uint32 { return e.master.master.inputChannels }

// MasterSampleRate reports the master output rate in Hz.
func (e *Engine) MasterSampleRate() uint32 { return e.master.master.inputSampleRate }

// SetLogger routes decoder-internal error reports; nil silences them.
func (e *Engine) SetLogger(logger *log.Logger) { e.logger = logger }

func (e *Engine) logf(format string, args ...any) {
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}

// StartEngine enables audio processing. Update is a no-op until called.
func (e *Engine) StartEngine() { e.active = true }

// StopEngine halts processing; voice state is left untouched.
func (e *Engine) StopEngine() { e.active = false }

// RegisterForCallbacks adds engine-level pass callbacks.
func (e *Engine) RegisterForCallbacks(cb *EngineCallback) {
	if cb != nil {
		e.callbacks = append(e.callbacks, cb)
	}
}

// UnregisterForCallbacks removes a previously registered callback record.
func (e *Engine) UnregisterForCallbacks(cb *EngineCallback) {
	for i, c := range e.callbacks {
		if c == cb {
			e.callbacks = append(e.callbacks[:i], e.callbacks[i+1:]...)
			return
		}
	}
}

// Update runs one tick: every active source decodes, resamples and mixes
// into its sends, then submixes run in ascending stage order. output
// receives MasterChannels×SamplesPerTick interleaved float32 samples and is
// borrowed only for the duration of the call. Accumulation into sends is
// clamped to ±MaxVolumeLevel per write; the final sum is not re-clamped.
func (e *Engine) Update(output []float32) error {
	if uint32(len(output)) != e.updateSize*e.master.master.inputChannels {
		return ErrOutputBufferSize
	}

	// The graph accumulates into the output, so the tick starts from
	// silence; a stopped engine stays silent.
	clear(output)
	if !e.active {
		return nil
	}

	for _, cb := range e.callbacks {
		if cb.OnProcessingPassStart != nil {
			cb.OnProcessingPassStart()
		}
	}

	// Writes to master land directly in the caller's buffer.
	e.master.master.output = output

	for _, source := range e.sources {
		if source.src.active {
			source.mixSource()
		}
	}

	for stage := uint32(0); stage < e.submixStages; stage++ {
		for _, submix := range e.submixes {
			if submix.mix.processingStage == stage {
				submix.mixSubmix()
			}
		}
	}

	e.master.master.output = nil

	for _, cb := range e.callbacks {
		if cb.OnProcessingPassEnd != nil {
			cb.OnProcessingPassEnd()
		}
	}
	return nil
}
