// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams into engine PCM16 buffers
// using github.com/jfreymuth/oggvorbis.
package vorbis
