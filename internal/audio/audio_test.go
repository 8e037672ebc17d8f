// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package audio provides voice-capture silence detection and the ambient
// sound mixer state used by the sounds screen.
package audio

import (
	"context"
	"errors"
	"testing"
	"time"
)

// =============================================================================
// SILENCE DETECTOR TESTS
// =============================================================================

func TestDetector_FiresAfterSustainedSilence(t *testing.T) {
	d := NewDetector(SilenceConfig{Threshold: 10, Duration: 1500 * time.Millisecond})
	start := time.Now()

	if d.Observe(5, start) {
		t.Error("first silent sample should not fire")
	}
	if d.Observe(3, start.Add(1*time.Second)) {
		t.Error("1s of silence should not fire")
	}
	if !d.Observe(0, start.Add(1500*time.Millisecond)) {
		t.Error("1.5s of silence should fire")
	}
}

func TestDetector_LoudSampleResetsRun(t *testing.T) {
	d := NewDetector(SilenceConfig{Threshold: 10, Duration: 1500 * time.Millisecond})
	start := time.Now()

	d.Observe(5, start)
	d.Observe(200, start.Add(1*time.Second)) // speech resumes
	if d.Observe(5, start.Add(2*time.Second)) {
		t.Error("run should have restarted after loud sample")
	}
	if !d.Observe(5, start.Add(3500*time.Millisecond)) {
		t.Error("new 1.5s run should fire")
	}
}

func TestDetector_ThresholdIsInclusive(t *testing.T) {
	d := NewDetector(SilenceConfig{Threshold: 10, Duration: time.Second})
	start := time.Now()

	d.Observe(10, start) // exactly at threshold counts as silence
	if !d.Observe(10, start.Add(time.Second)) {
		t.Error("level equal to threshold should count as silence")
	}
}

func TestDetector_Reset(t *testing.T) {
	d := NewDetector(SilenceConfig{Threshold: 10, Duration: time.Second})
	start := time.Now()

	d.Observe(5, start)
	d.Reset()
	if d.Observe(5, start.Add(2*time.Second)) {
		t.Error("reset should discard the earlier run")
	}
}

func TestDetector_Defaults(t *testing.T) {
	d := NewDetector(SilenceConfig{})
	if d.cfg.Threshold != 10 || d.cfg.Duration != 1500*time.Millisecond {
		t.Errorf("defaults = %+v", d.cfg)
	}
}

// =============================================================================
// WATCH LOOP TESTS
// =============================================================================

// scriptedMeter returns levels in order, repeating the last one.
type scriptedMeter struct {
	levels []int
	err    error
	i      int
}

func (m *scriptedMeter) Level() (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.i < len(m.levels) {
		m.i++
	}
	return m.levels[m.i-1], nil
}

func TestWatch_ReturnsOnSilence(t *testing.T) {
	meter := &scriptedMeter{levels: []int{100, 50, 0}}
	cfg := SilenceConfig{Threshold: 10, Duration: 20 * time.Millisecond, Interval: 5 * time.Millisecond}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Watch(ctx, meter, cfg); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
}

func TestWatch_PropagatesMeterError(t *testing.T) {
	meter := &scriptedMeter{err: errors.New("device lost")}
	cfg := SilenceConfig{Interval: time.Millisecond}

	err := Watch(context.Background(), meter, cfg)
	if err == nil || err.Error() != "device lost" {
		t.Fatalf("err = %v, want device lost", err)
	}
}

func TestWatch_ContextCancel(t *testing.T) {
	meter := &scriptedMeter{levels: []int{200}} // never silent
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := Watch(ctx, meter, SilenceConfig{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

// =============================================================================
// MIXER TESTS
// =============================================================================

// recordingOutput captures every call made by the mixer.
type recordingOutput struct {
	calls  []string
	failOn string
}

func (r *recordingOutput) Play(name, file string, volume float64) error {
	if r.failOn == "play" {
		return errors.New("play failed")
	}
	r.calls = append(r.calls, "play:"+name)
	return nil
}

func (r *recordingOutput) Pause(name string) error {
	r.calls = append(r.calls, "pause:"+name)
	return nil
}

func (r *recordingOutput) SetVolume(name string, volume float64) error {
	r.calls = append(r.calls, "volume:"+name)
	return nil
}

func (r *recordingOutput) Close() error {
	r.calls = append(r.calls, "close")
	return nil
}

func testSounds() []Sound {
	return []Sound{
		{Name: "rain", File: "rain.mp3"},
		{Name: "fire", File: "fire.mp3"},
	}
}

func TestMixer_Toggle(t *testing.T) {
	out := &recordingOutput{}
	m := NewMixer(out, testSounds())

	if err := m.Toggle("rain"); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if m.PlayingCount() != 1 {
		t.Errorf("PlayingCount = %d, want 1", m.PlayingCount())
	}

	if err := m.Toggle("rain"); err != nil {
		t.Fatalf("second Toggle failed: %v", err)
	}
	if m.PlayingCount() != 0 {
		t.Errorf("PlayingCount = %d, want 0", m.PlayingCount())
	}
	if len(out.calls) != 2 || out.calls[0] != "play:rain" || out.calls[1] != "pause:rain" {
		t.Errorf("calls = %v", out.calls)
	}
}

func TestMixer_ToggleUnknownSound(t *testing.T) {
	m := NewMixer(NopOutput{}, testSounds())
	if err := m.Toggle("ocean"); err == nil {
		t.Error("expected error for unknown sound")
	}
}

func TestMixer_PlayFailureLeavesPaused(t *testing.T) {
	out := &recordingOutput{failOn: "play"}
	m := NewMixer(out, testSounds())

	if err := m.Toggle("rain"); err == nil {
		t.Fatal("expected play error")
	}
	if m.PlayingCount() != 0 {
		t.Error("failed play should leave the sound paused")
	}
}

func TestMixer_SetVolumeClampsAndPersists(t *testing.T) {
	out := &recordingOutput{}
	m := NewMixer(out, testSounds())

	if err := m.SetVolume("fire", 150); err != nil {
		t.Fatalf("SetVolume failed: %v", err)
	}
	if got := m.Channels()[1].Volume; got != 100 {
		t.Errorf("volume = %d, want clamped to 100", got)
	}

	// Paused sound: no output call, but the value sticks for resume.
	if err := m.SetVolume("fire", 30); err != nil {
		t.Fatalf("SetVolume failed: %v", err)
	}
	if len(out.calls) != 0 {
		t.Errorf("paused volume change should not touch output: %v", out.calls)
	}
	if got := m.Channels()[1].Volume; got != 30 {
		t.Errorf("volume = %d, want 30", got)
	}

	if err := m.Toggle("fire"); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if err := m.SetVolume("fire", 60); err != nil {
		t.Fatalf("SetVolume while playing failed: %v", err)
	}
	if out.calls[len(out.calls)-1] != "volume:fire" {
		t.Errorf("calls = %v", out.calls)
	}
}

func TestMixer_Close(t *testing.T) {
	out := &recordingOutput{}
	m := NewMixer(out, testSounds())
	m.Toggle("rain")
	m.Toggle("fire")

	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if m.PlayingCount() != 0 {
		t.Error("Close should pause everything")
	}
	if out.calls[len(out.calls)-1] != "close" {
		t.Errorf("calls = %v", out.calls)
	}
}
