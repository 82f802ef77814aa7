// Package sound plays a short system sound when a selection is saved.
package sound

import (
	"os/exec"
	"runtime"
)

// SoundType represents the sound events the picker emits
type SoundType int

const (
	SoundSuccess SoundType = iota
	SoundError
)

// Player handles sound playback
type Player struct {
	enabled bool
}

// New creates a new sound player
func New(enabled bool) *Player {
	return &Player{enabled: enabled}
}

// SetEnabled enables or disables sound
func (p *Player) SetEnabled(enabled bool) {
	p.enabled = enabled
}

// IsEnabled returns whether sound is enabled
func (p *Player) IsEnabled() bool {
	return p.enabled
}

// Play plays a sound of the given type
func (p *Player) Play(soundType SoundType) error {
	if !p.enabled {
		return nil
	}

	switch runtime.GOOS {
	case "darwin":
		return p.playMacOS(soundType)
	case "linux":
		return p.playLinux(soundType)
	default:
		// Sound not supported on this platform
		return nil
	}
}

// PlaySuccess plays the save confirmation sound
func (p *Player) PlaySuccess() error {
	return p.Play(SoundSuccess)
}

// PlayError plays the error sound
func (p *Player) PlayError() error {
	return p.Play(SoundError)
}

// playMacOS plays system sounds on macOS using afplay
func (p *Player) playMacOS(soundType SoundType) error {
	const soundDir = "/System/Library/Sounds/"

	var soundPath string
	switch soundType {
	case SoundError:
		soundPath = soundDir + "Basso.aiff"
	default:
		soundPath = soundDir + "Glass.aiff"
	}

	// Start in background so the UI never blocks on playback
	cmd := exec.Command("afplay", soundPath)
	return cmd.Start()
}

// playLinux plays sounds on Linux using paplay
func (p *Player) playLinux(soundType SoundType) error {
	const soundDir = "/usr/share/sounds/freedesktop/stereo/"

	var soundPath string
	switch soundType {
	case SoundError:
		soundPath = soundDir + "dialog-error.oga"
	default:
		soundPath = soundDir + "complete.oga"
	}

	cmd := exec.Command("paplay", soundPath)
	return cmd.Start()
}
