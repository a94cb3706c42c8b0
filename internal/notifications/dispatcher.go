package notifications

import (
	"context"
	"fmt"
)

// Notification is a rendered message ready for delivery.
type Notification struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers notifications over a single channel.
type Sender interface {
	Channel() Channel
	Send(ctx context.Context, notification Notification) error
}

// Dispatcher routes notifications to the sender registered for their channel.
type Dispatcher struct {
	senders map[Channel]Sender
}

// NewDispatcher creates a dispatcher over the given senders.
func NewDispatcher(senders ...Sender) *Dispatcher {
	d := &Dispatcher{senders: make(map[Channel]Sender, len(senders))}
	for _, s := range senders {
		d.senders[s.Channel()] = s
	}
	return d
}

// Send delivers a notification over the given channel.
func (d *Dispatcher) Send(ctx context.Context, channel Channel, notification Notification) error {
	sender, ok := d.senders[channel]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownChannel, channel)
	}
	return sender.Send(ctx, notification)
}
