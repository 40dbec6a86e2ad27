// SPDX-License-Identifier: EPL-2.0

package driver

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/ik5/mixdown/engine"
	"github.com/ik5/mixdown/utils"
)

// Player drives an engine against the system audio device. The oto player
// pulls PCM through Read, which runs one engine tick at a time under the
// player mutex; client mutations go through Do so they serialize against
// the tick, which is the engine's threading contract.
type Player struct {
	mtx sync.Mutex
	eng *engine.Engine

	otoCtx *oto.Context
	player *oto.Player

	tick       []float32
	pending    []byte // one tick converted to device bytes
	pendingOff int    // consumed prefix of pending
}

// NewPlayer opens the default audio device at the engine's master format.
// It blocks until the device is ready.
func NewPlayer(eng *engine.Engine) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   int(eng.MasterSampleRate()),
		ChannelCount: int(eng.MasterChannels()),
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-readyChan

	p := newPlayer(eng)
	p.otoCtx = ctx
	p.player = ctx.NewPlayer(p)
	return p, nil
}

func newPlayer(eng *engine.Engine) *Player {
	return &Player{
		eng:  eng,
		tick: make([]float32, eng.MasterChannels()*eng.SamplesPerTick()),
	}
}

// Play starts pulling ticks into the device.
func (p *Player) Play() {
	p.player.Play()
}

// Pause stops pulling; the engine keeps its state.
func (p *Player) Pause() {
	p.player.Pause()
}

// Do runs f serialized against the tick, for voice and buffer mutations
// while audio is live.
func (p *Player) Do(f func()) {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	f()
}

// Close tears the device down.
func (p *Player) Close() error {
	if p.player != nil {
		if err := p.player.Close(); err != nil {
			return fmt.Errorf("closing player: %w", err)
		}
		p.player = nil
	}
	return nil
}

// Read implements io.Reader for the oto player: each call serves buffered
// tick bytes first, then runs Update for more. The engine emits float32;
// the device wants int16 little-endian.
func (p *Player) Read(buf []byte) (int, error) {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	read := 0
	for read < len(buf) {
		if p.pendingOff >= len(p.pending) {
			if err := p.eng.Update(p.tick); err != nil {
				return read, err
			}
			if len(p.pending) != len(p.tick)*2 {
				p.pending = make([]byte, len(p.tick)*2)
			}
			utils.Float32SliceToInt16LE(p.pending, p.tick)
			p.pendingOff = 0
		}
		n := copy(buf[read:], p.pending[p.pendingOff:])
		p.pendingOff += n
		read += n
	}
	return read, nil
}
