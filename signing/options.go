package signing

// Config holds the signer configuration.
type Config struct {
	// Logger is used for logging operations (optional)
	Logger Logger

	// BuildNumber is written to the certificate block header for
	// downgrade protection
	BuildNumber uint32

	// VerifyAfterSign checks the finished image against the certificate
	VerifyAfterSign bool
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		BuildNumber:     1,
		VerifyAfterSign: true,
	}
}

// Option is a functional option for configuring the Signer.
type Option func(*Config)

// WithLogger sets a logger for the signer operations.
//
// Example:
//
//	s := signing.New(key, signing.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithBuildNumber sets the build number stored in the certificate block header.
// Default is 1.
//
// Example:
//
//	s := signing.New(key, signing.WithBuildNumber(7))
func WithBuildNumber(build uint32) Option {
	return func(c *Config) {
		c.BuildNumber = build
	}
}

// WithVerifyAfterSign enables or disables verification of the finished image.
// Default is true.
//
// Example:
//
//	s := signing.New(key, signing.WithVerifyAfterSign(false))
func WithVerifyAfterSign(verify bool) Option {
	return func(c *Config) {
		c.VerifyAfterSign = verify
	}
}
