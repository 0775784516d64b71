// Package notify sends desktop notifications at the end of timed phases.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// Notifier shows a short message to the user outside the terminal.
type Notifier interface {
	Notify(title, message string) error
}

// Desktop notifies through the platform notification center.
type Desktop struct {
	// Sound plays the system alert sound along with the notification.
	Sound bool
}

// NewDesktop returns a desktop notifier registered under the focustrack name.
func NewDesktop(sound bool) *Desktop {
	beeep.AppName = "focustrack"
	return &Desktop{Sound: sound}
}

func (d *Desktop) Notify(title, message string) error {
	var err error
	if d.Sound {
		err = beeep.Alert(title, message, "")
	} else {
		err = beeep.Notify(title, message, "")
	}
	if err != nil {
		return fmt.Errorf("sending notification: %w", err)
	}
	return nil
}

// NoOp drops every notification.
type NoOp struct{}

func (NoOp) Notify(string, string) error { return nil }

// Recorder keeps notifications in memory.
type Recorder struct {
	Sent []Message
}

// Message is one recorded notification.
type Message struct {
	Title   string
	Message string
}

func (r *Recorder) Notify(title, message string) error {
	r.Sent = append(r.Sent, Message{Title: title, Message: message})
	return nil
}
