// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 streams into engine PCM16 buffers using
// github.com/hajimehoshi/go-mp3. The engine's codec set is closed, so
// client-side formats are converted up front rather than decoded per tick.
package mp3
