// SPDX-License-Identifier: EPL-2.0

// Package platform supplies the engine's platform-owned pieces: the
// stateful submix resampler. The engine treats the resampler as opaque; it
// only pushes accumulated input and pulls rate-converted output once per
// tick.
package platform
