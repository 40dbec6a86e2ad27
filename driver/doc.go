// SPDX-License-Identifier: EPL-2.0

// Package driver plays an engine through the system audio device with
// github.com/ebitengine/oto. It owns the tick loop: the device pulls PCM,
// each pull runs engine ticks under a mutex, and Do lets clients mutate
// the voice graph between ticks.
package driver
