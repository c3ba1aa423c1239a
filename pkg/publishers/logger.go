package publishers

// Logger is the subset of the application logger publishers write to.
// Delivery failures go to ErrorObj; per-message details stay at debug level.
type Logger interface {
	DebugObj(msg, key string, obj any)
	WarnObj(msg, key string, obj any)
	ErrorObj(msg, key string, obj any)
}

type discardLogger struct{}

func (discardLogger) DebugObj(string, string, any) {}
func (discardLogger) WarnObj(string, string, any)  {}
func (discardLogger) ErrorObj(string, string, any) {}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return discardLogger{}
	}
	return log
}
