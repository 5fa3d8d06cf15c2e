package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/moffa90/go-sb2/certificate"
	"github.com/moffa90/go-sb2/config"
	"github.com/moffa90/go-sb2/signing"
)

func runSign(w io.Writer, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", configPath, err)
	}

	key, err := certificate.LoadPrivateKey(cfg.RootCertSecretKey)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.RootCertSecretKey, err)
	}
	certDER, err := os.ReadFile(cfg.SigningCertificate())
	if err != nil {
		return err
	}
	hashes, err := certificate.LoadRotKeyHashes(cfg.RootCertFilenames)
	if err != nil {
		return err
	}
	image, err := os.ReadFile(cfg.Image)
	if err != nil {
		return err
	}

	s := signing.New(key,
		signing.WithBuildNumber(cfg.BuildNumber),
		signing.WithLogger(klogLogger{}),
	)
	signed, err := s.Sign(image, certDER, hashes)
	if err != nil {
		return err
	}

	if err := os.WriteFile(cfg.SignedImage, signed, 0o644); err != nil {
		return err
	}

	rotkh := hashes.TableHash()
	color.New(color.FgGreen).Fprintf(w, "signed %s -> %s (%d bytes)\n", cfg.Image, cfg.SignedImage, len(signed))
	fmt.Fprintf(w, "build number: %d\n", cfg.BuildNumber)
	fmt.Fprintf(w, "rotkh:        %s\n", hex.EncodeToString(rotkh[:]))
	return nil
}

func runRotkh(w io.Writer, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	hashes, err := certificate.LoadRotKeyHashes(cfg.RootCertFilenames)
	if err != nil {
		return err
	}
	for i, h := range hashes {
		klogLogger{}.Debug("root key hash", "index", i, "hash", hex.EncodeToString(h[:]))
	}

	rotkh := hashes.TableHash()
	fmt.Fprintln(w, hex.EncodeToString(rotkh[:]))
	return nil
}
