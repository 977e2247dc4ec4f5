package services

import "context"

// Notifier delivers a short text to one identity. Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, identityKey, message string) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, identityKey, message string) error

func (f NotifierFunc) Notify(ctx context.Context, identityKey, message string) error {
	return f(ctx, identityKey, message)
}
