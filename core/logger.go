package core

// Logger is any service that can log app events, optionally shipping them
// to an external error tracker.
// Extra args may carry an error, a map of extra data or the acting user.User.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
