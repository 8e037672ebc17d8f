// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package audio provides voice-capture silence detection and the ambient
// sound mixer state used by the sounds screen.
package audio

import (
	"context"
	"time"
)

// =============================================================================
// LEVEL METER
// =============================================================================

// LevelMeter reports the current input level of a capture device on a
// 0..255 scale. Implementations wrap whatever capture source is available;
// tests use a scripted meter.
type LevelMeter interface {
	// Level returns the current input level. An error means the capture
	// device was lost and the recording should stop.
	Level() (int, error)
}

// =============================================================================
// SILENCE DETECTOR
// =============================================================================

// SilenceConfig tunes the silence detector. Zero values select defaults.
type SilenceConfig struct {
	// Threshold is the level at or below which input counts as silence.
	Threshold int

	// Duration is how long the level must stay below Threshold before the
	// detector fires.
	Duration time.Duration

	// Interval is how often the meter is sampled.
	Interval time.Duration
}

// withDefaults fills unset config fields.
func (c SilenceConfig) withDefaults() SilenceConfig {
	if c.Threshold <= 0 {
		c.Threshold = 10
	}
	if c.Duration <= 0 {
		c.Duration = 1500 * time.Millisecond
	}
	if c.Interval <= 0 {
		c.Interval = 100 * time.Millisecond
	}
	return c
}

// Detector is the silence state machine. It is fed level samples and fires
// once the level has stayed below the threshold for the configured duration.
// The detector itself is clock-free so it can be tested with synthetic time.
type Detector struct {
	cfg          SilenceConfig
	silenceSince time.Time
	inSilence    bool
}

// NewDetector creates a detector with the given config.
func NewDetector(cfg SilenceConfig) *Detector {
	return &Detector{cfg: cfg.withDefaults()}
}

// Observe feeds one level sample taken at the given time. It returns true
// when the sample completes an unbroken run of silence at least Duration
// long. Any sample above the threshold resets the run.
func (d *Detector) Observe(level int, now time.Time) bool {
	if level > d.cfg.Threshold {
		d.inSilence = false
		return false
	}

	if !d.inSilence {
		d.inSilence = true
		d.silenceSince = now
		return false
	}

	return now.Sub(d.silenceSince) >= d.cfg.Duration
}

// Reset clears any in-progress silence run, for reuse across recordings.
func (d *Detector) Reset() {
	d.inSilence = false
}

// =============================================================================
// WATCH LOOP
// =============================================================================

// Watch samples the meter on the configured interval until silence is
// sustained for the configured duration. It returns nil when silence is
// detected, the meter's error if the capture device fails, or the context
// error on cancellation.
func Watch(ctx context.Context, meter LevelMeter, cfg SilenceConfig) error {
	cfg = cfg.withDefaults()
	detector := NewDetector(cfg)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			level, err := meter.Level()
			if err != nil {
				return err
			}
			if detector.Observe(level, now) {
				return nil
			}
		}
	}
}
