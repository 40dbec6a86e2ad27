// SPDX-License-Identifier: EPL-2.0

package engine

// Buffer flags.
const (
	// EndOfStream marks the final buffer of a logical stream. Consuming it
	// zeroes the fractional cursor and fires OnStreamEnd.
	EndOfStream uint32 = 0x0040
)

// LoopInfinite in Buffer.LoopCount loops forever; any smaller non-zero
// count is decremented on each completed pass.
const LoopInfinite uint32 = 0xFF

// Buffer is an immutable encoded audio region contributed by the client.
// All sample fields count source samples, not bytes. PlayLength zero means
// "the whole buffer". Context is handed back verbatim to buffer callbacks.
type Buffer struct {
	Flags      uint32
	AudioData  []byte
	PlayBegin  uint32
	PlayLength uint32
	LoopBegin  uint32
	LoopLength uint32
	LoopCount  uint32
	Context    any
}

// BufferWMA accompanies buffers for packet codecs. Entry i is the total
// decoded byte count produced by packets 0..i inclusive; the resampler's
// random-access seeks resolve through it.
type BufferWMA struct {
	DecodedPacketCumulativeBytes []uint32
}

// bufferEntry is a node of a source voice's queued-buffer list. Buffers are
// consumed head first.
type bufferEntry struct {
	buffer Buffer
	wma    *BufferWMA
	next   *bufferEntry
}

// SubmitBuffer queues buf on a source voice. For WMA/XMA formats wma is
// mandatory and its packet table must be monotonically non-decreasing.
func (v *Voice) SubmitBuffer(buf Buffer, wma *BufferWMA) error {
	if v.kind != voiceSource {
		return ErrNotSourceVoice
	}

	packetCodec := v.src.wma != nil
	if packetCodec {
		if wma == nil || len(wma.DecodedPacketCumulativeBytes) == 0 {
			return ErrBufferWMARequired
		}
		table := wma.DecodedPacketCumulativeBytes
		for i := 1; i < len(table); i++ {
			if table[i] < table[i-1] {
				return ErrInvalidBufferWMA
			}
		}
	}

	if buf.PlayLength == 0 {
		var total uint32
		if packetCodec {
			table := wma.DecodedPacketCumulativeBytes
			total = table[len(table)-1] / (uint32(v.src.format.Channels) * 4)
		} else {
			total = frameSamples(&v.src.format, uint32(len(buf.AudioData)))
		}
		if total <= buf.PlayBegin {
			return ErrInvalidBuffer
		}
		buf.PlayLength = total - buf.PlayBegin
	}

	entry := &bufferEntry{buffer: buf, wma: wma}
	if v.src.bufferList == nil {
		v.src.bufferList = entry
		v.src.curBufferOffset = buf.PlayBegin
	} else {
		tail := v.src.bufferList
		for tail.next != nil {
			tail = tail.next
		}
		tail.next = entry
	}
	return nil
}

// FlushBuffers drops every queued buffer, firing OnBufferEnd for each so
// clients can release contexts. The play cursor resets with the queue.
func (v *Voice) FlushBuffers() error {
	if v.kind != voiceSource {
		return ErrNotSourceVoice
	}
	for entry := v.src.bufferList; entry != nil; entry = entry.next {
		if v.src.callback != nil && v.src.callback.OnBufferEnd != nil {
			v.src.callback.OnBufferEnd(entry.buffer.Context)
		}
	}
	v.src.bufferList = nil
	v.src.curBufferOffset = 0
	v.src.curBufferOffsetDec = 0
	if v.src.wma != nil {
		v.src.wma.reset()
	}
	return nil
}

// BuffersQueued reports the number of buffers waiting on a source voice.
func (v *Voice) BuffersQueued() int {
	if v.kind != voiceSource {
		return 0
	}
	n := 0
	for entry := v.src.bufferList; entry != nil; entry = entry.next {
		n++
	}
	return n
}
