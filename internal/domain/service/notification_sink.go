package service

// NotificationSink receives live notifications for a subscribed user. The
// session layer (an SSE stream, a test recorder) implements this single
// callback. Sinks must be comparable values so the registry can remove a
// specific subscription again.
type NotificationSink interface {
	// OnMessage delivers one notification text. Called synchronously by the
	// notifier; implementations must not block.
	OnMessage(text string)
}
