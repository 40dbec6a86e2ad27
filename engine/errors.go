// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported source format")
	ErrNotSourceVoice    = errors.New("operation requires a source voice")
	ErrBufferWMARequired = errors.New("packet codec buffers need xWMA metadata")
	ErrInvalidBufferWMA  = errors.New("xWMA packet table must be monotonically non-decreasing")
	ErrInvalidBuffer     = errors.New("buffer play region is empty")
	ErrOutputBufferSize  = errors.New("output buffer does not match master channels times tick size")
	ErrStageOrder        = errors.New("submix destination stage must be greater than source stage")
	ErrMatrixSize        = errors.New("output matrix size must be destination channels times source channels")
	ErrChannelCount      = errors.New("channel volume count must match voice channels")
	ErrNotInSends        = errors.New("destination voice is not in the send list")
)
