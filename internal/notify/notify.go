// Package notify sends desktop notifications when a selection is
// saved, using the platform's native notification command.
package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Notifier handles desktop notifications
type Notifier struct {
	enabled bool
}

// New creates a new notifier
func New(enabled bool) *Notifier {
	return &Notifier{enabled: enabled}
}

// SetEnabled enables or disables notifications
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// IsEnabled returns whether notifications are enabled
func (n *Notifier) IsEnabled() bool {
	return n.enabled
}

// Notify sends a desktop notification
func (n *Notifier) Notify(title, message string) error {
	if !n.enabled {
		return nil
	}

	switch runtime.GOOS {
	case "darwin":
		return n.notifyMacOS(title, message)
	case "linux":
		return n.notifyLinux(title, message)
	default:
		// Notifications not supported on this platform
		return nil
	}
}

// NotifySelectionSaved announces a newly saved duration
func (n *Notifier) NotifySelectionSaved(display, formatted string) error {
	return n.Notify("Duration saved", fmt.Sprintf("%s (%s)", display, formatted))
}

// NotifySaveFailed announces a failed save
func (n *Notifier) NotifySaveFailed(err error) error {
	return n.Notify("Save failed", err.Error())
}

// notifyMacOS sends notification using osascript on macOS
func (n *Notifier) notifyMacOS(title, message string) error {
	title = strings.ReplaceAll(title, `"`, `\"`)
	message = strings.ReplaceAll(message, `"`, `\"`)

	script := fmt.Sprintf(`display notification "%s" with title "%s"`, message, title)
	cmd := exec.Command("osascript", "-e", script)
	return cmd.Run()
}

// notifyLinux sends notification using notify-send on Linux
func (n *Notifier) notifyLinux(title, message string) error {
	cmd := exec.Command("notify-send", title, message)
	return cmd.Run()
}
