// Package config loads the TOML configuration used to sign images.
//
// A configuration names the plain image, the output file and the four
// root-of-trust certificates. The first certificate signs the image with
// the private key given by root_cert_secret_key:
//
//	root_cert_secret_key = "keys/root0.pem"
//	root_cert_filenames = [
//	    "keys/root0.der",
//	    "keys/root1.der",
//	    "keys/root2.der",
//	    "keys/root3.der",
//	]
//	image = "app.bin"
//	signed_image = "app-signed.bin"
//	build_number = 1
//
// Relative paths are used as given, relative to the working directory.
package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/moffa90/go-sb2/certificate"
)

// ErrInvalid is returned by Validate for incomplete configurations.
var ErrInvalid = errors.New("invalid config")

// Config describes a signing job.
type Config struct {
	// RootCertSecretKey is the PEM private key of the first root certificate
	RootCertSecretKey string `toml:"root_cert_secret_key"`

	// RootCertFilenames are the DER root-of-trust certificates.
	// The first one is embedded in the signed image.
	RootCertFilenames []string `toml:"root_cert_filenames"`

	// Image is the plain input image
	Image string `toml:"image"`

	// SignedImage is where the signed image is written
	SignedImage string `toml:"signed_image"`

	BuildNumber uint32 `toml:"build_number"`
}

// DefaultConfig returns a Config with every optional field set.
func DefaultConfig() Config {
	return Config{
		BuildNumber: 1,
	}
}

// Parse decodes a TOML configuration and checks the root certificate list.
// Keys this package does not know about are ignored, so one file can also
// carry settings for other tools.
func Parse(data string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.ValidateRoots(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads a TOML configuration file and checks the root certificate list.
// Call Validate before signing with it.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.ValidateRoots(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// ValidateRoots checks that exactly four root certificates are named.
func (c *Config) ValidateRoots() error {
	if len(c.RootCertFilenames) != certificate.RotKeyCount {
		return fmt.Errorf("%w: root_cert_filenames needs %d entries, got %d",
			ErrInvalid, certificate.RotKeyCount, len(c.RootCertFilenames))
	}
	for i, name := range c.RootCertFilenames {
		if name == "" {
			return fmt.Errorf("%w: root_cert_filenames[%d] is empty", ErrInvalid, i)
		}
	}
	return nil
}

// Validate checks that every field needed for signing is present.
func (c *Config) Validate() error {
	if err := c.ValidateRoots(); err != nil {
		return err
	}
	if c.RootCertSecretKey == "" {
		return fmt.Errorf("%w: root_cert_secret_key is required", ErrInvalid)
	}
	if c.Image == "" {
		return fmt.Errorf("%w: image is required", ErrInvalid)
	}
	if c.SignedImage == "" {
		return fmt.Errorf("%w: signed_image is required", ErrInvalid)
	}
	if c.SignedImage == c.Image {
		return fmt.Errorf("%w: signed_image would overwrite image", ErrInvalid)
	}
	return nil
}

// SigningCertificate is the certificate embedded in signed images.
func (c *Config) SigningCertificate() string {
	return c.RootCertFilenames[0]
}
