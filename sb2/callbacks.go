package sb2

// Logger is an optional logging interface for Parse.
// This allows integration with any logging framework.
//
// Example with klog:
//
//	type klogLogger struct{}
//	func (klogLogger) Debug(msg string, kv ...interface{}) { klog.V(2).InfoS(msg, kv...) }
//	func (klogLogger) Info(msg string, kv ...interface{})  { klog.InfoS(msg, kv...) }
//	func (klogLogger) Error(msg string, kv ...interface{}) { klog.ErrorS(nil, msg, kv...) }
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
