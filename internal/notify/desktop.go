package notify

import "github.com/gen2brain/beeep"

// Desktop shows OS desktop notifications.
type Desktop struct{}

func NewDesktop() Desktop {
	return Desktop{}
}

func (Desktop) Send(title, message string) error {
	return beeep.Notify(title, message, "")
}
