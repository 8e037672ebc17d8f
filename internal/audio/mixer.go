// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package audio provides voice-capture silence detection and the ambient
// sound mixer state used by the sounds screen.
package audio

import (
	"fmt"
	"sync"
)

// =============================================================================
// PLAYER OUTPUT
// =============================================================================

// Output is the playback device behind the mixer. Real implementations wrap
// an audio backend; tests use a recording fake and headless sessions use
// NopOutput.
type Output interface {
	// Play starts (or resumes) looping playback of the given file.
	Play(name, file string, volume float64) error

	// Pause stops playback of the named sound, keeping its position.
	Pause(name string) error

	// SetVolume adjusts a playing sound's volume, 0.0 to 1.0.
	SetVolume(name string, volume float64) error

	// Close releases all playback handles.
	Close() error
}

// NopOutput is an Output that does nothing, for tests and headless use.
type NopOutput struct{}

func (NopOutput) Play(string, string, float64) error { return nil }
func (NopOutput) Pause(string) error                 { return nil }
func (NopOutput) SetVolume(string, float64) error    { return nil }
func (NopOutput) Close() error                       { return nil }

// =============================================================================
// MIXER
// =============================================================================

// Sound is one entry of the configured ambient sound list.
type Sound struct {
	Name string
	File string
}

// Channel is the mixer's state for one sound.
type Channel struct {
	Sound
	Playing bool
	Volume  int // 0..100
}

// Mixer holds per-sound play state and volume, and drives an Output.
// Sounds keep their configured order; volumes persist across pause/resume.
type Mixer struct {
	out      Output
	channels []*Channel
	mu       sync.Mutex
}

// NewMixer creates a mixer for the configured sound list. Every sound
// starts paused at full volume.
func NewMixer(out Output, sounds []Sound) *Mixer {
	m := &Mixer{out: out}
	for _, s := range sounds {
		m.channels = append(m.channels, &Channel{Sound: s, Volume: 100})
	}
	return m
}

// Toggle flips the named sound between playing and paused.
func (m *Mixer) Toggle(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := m.byNameLocked(name)
	if ch == nil {
		return fmt.Errorf("unknown sound: %s", name)
	}

	if ch.Playing {
		if err := m.out.Pause(ch.Name); err != nil {
			return err
		}
		ch.Playing = false
		return nil
	}

	if err := m.out.Play(ch.Name, ch.File, float64(ch.Volume)/100); err != nil {
		return err
	}
	ch.Playing = true
	return nil
}

// SetVolume sets the named sound's volume on a 0..100 scale, clamping out
// of range values. The output is only touched while the sound is playing;
// a paused sound picks the volume up on resume.
func (m *Mixer) SetVolume(name string, volume int) error {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ch := m.byNameLocked(name)
	if ch == nil {
		return fmt.Errorf("unknown sound: %s", name)
	}

	ch.Volume = volume
	if ch.Playing {
		return m.out.SetVolume(ch.Name, float64(volume)/100)
	}
	return nil
}

// Channels returns a snapshot of all channels in configured order.
func (m *Mixer) Channels() []Channel {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Channel, len(m.channels))
	for i, ch := range m.channels {
		out[i] = *ch
	}
	return out
}

// PlayingCount returns how many sounds are currently playing.
func (m *Mixer) PlayingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, ch := range m.channels {
		if ch.Playing {
			n++
		}
	}
	return n
}

// Close pauses everything and releases the output's playback handles.
func (m *Mixer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, ch := range m.channels {
		ch.Playing = false
	}
	return m.out.Close()
}

// byNameLocked finds a channel by sound name (must be called with lock held).
func (m *Mixer) byNameLocked(name string) *Channel {
	for _, ch := range m.channels {
		if ch.Name == name {
			return ch
		}
	}
	return nil
}
