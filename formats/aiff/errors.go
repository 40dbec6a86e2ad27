// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	ErrNotAiffFile        = errors.New("not an AIFF file")
	ErrOnlyPCM16Supported = errors.New("only PCM 16-bit AIFF supported")
)
