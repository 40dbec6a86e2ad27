// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes 16-bit AIFF files into engine PCM16 buffers using
// github.com/go-audio/aiff.
package aiff
