// Package notify delivers reminder notifications. Sinks are fire-and-forget:
// callers log a failed Send and move on.
package notify

import "errors"

// Notifier pushes a short message to the user outside the terminal.
type Notifier interface {
	Send(title, message string) error
}

// Multi fans a notification out to every configured sink. Send reports the
// combined errors but still attempts every sink.
type Multi []Notifier

func (m Multi) Send(title, message string) error {
	var errs []error
	for _, n := range m {
		if err := n.Send(title, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
