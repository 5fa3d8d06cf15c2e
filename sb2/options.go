package sb2

// Config holds the parser configuration.
type Config struct {
	// KEK wraps the keyblob
	KEK []byte

	// Logger is used for logging parse steps (optional)
	Logger Logger
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	kek := DefaultKEK()
	return Config{
		KEK: kek[:],
	}
}

// Option is a functional option for configuring Parse.
type Option func(*Config)

// WithKEK sets the key-encryption key used to unwrap the keyblob.
// Only needed for images not produced for the boot ROM's fixed key.
//
// Example:
//
//	c, err := sb2.Parse("image.sb2", sb2.WithKEK(kek))
func WithKEK(kek []byte) Option {
	return func(c *Config) {
		c.KEK = kek
	}
}

// WithLogger sets a logger for the parse steps.
//
// Example:
//
//	c, err := sb2.Parse("image.sb2", sb2.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

func (c *Config) logDebug(msg string, keysAndValues ...interface{}) {
	if c.Logger != nil {
		c.Logger.Debug(msg, keysAndValues...)
	}
}

func (c *Config) logInfo(msg string, keysAndValues ...interface{}) {
	if c.Logger != nil {
		c.Logger.Info(msg, keysAndValues...)
	}
}

func (c *Config) logError(msg string, keysAndValues ...interface{}) {
	if c.Logger != nil {
		c.Logger.Error(msg, keysAndValues...)
	}
}
