package main

import (
	"crypto/x509"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/moffa90/go-sb2/certificate"
	"github.com/moffa90/go-sb2/sb2"
	"github.com/moffa90/go-sb2/signing"
)

var (
	fieldName = color.New(color.Bold, color.FgHiBlue).SprintFunc()
	good      = color.New(color.FgGreen)
	bad       = color.New(color.FgRed)
)

func runSniff(w io.Writer, path string) error {
	data, err := readHead(path, sb2.SniffSize)
	if err != nil {
		return err
	}
	ft, err := sb2.Sniff(data)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, ft)
	return nil
}

func runShow(w io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	ft, err := sb2.Sniff(data)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s %s\n", fieldName("filetype:"), ft)

	switch ft {
	case sb2.Sb21:
		c, err := sb2.ParseBytes(data, sb2.WithLogger(klogLogger{}))
		if err != nil {
			bad.Fprintln(w, "verification failed")
			return err
		}
		showContainer(w, c)
	case sb2.SignedBin:
		img, err := signing.Parse(data)
		if err != nil {
			bad.Fprintln(w, "verification failed")
			return err
		}
		showSignedImage(w, img)
	default:
		fmt.Fprintln(w, "nothing more to show")
	}
	return nil
}

func showContainer(w io.Writer, c *sb2.Container) {
	h := c.Header
	fmt.Fprintf(w, "%s 2.%d\n", fieldName("version:"), h.Minor)
	fmt.Fprintf(w, "%s %d blocks, boot tag at block %d\n", fieldName("image:"), h.ImageBlocks, h.BootTagOffsetBlocks)
	fmt.Fprintf(w, "%s %s\n", fieldName("timestamp:"), h.Time().Format(time.RFC3339))
	fmt.Fprintf(w, "%s %s\n", fieldName("product version:"), h.ProductVersion.Semver())
	fmt.Fprintf(w, "%s %s\n", fieldName("component version:"), h.ComponentVersion.Semver())
	fmt.Fprintf(w, "%s %d\n", fieldName("build number:"), h.BuildNumber)
	fmt.Fprintf(w, "%s %s\n", fieldName("certificate:"), c.Certificate.Subject)
	showTrust(w, c.Certificate, c.RotKeyHashes)
	good.Fprintln(w, "signature and hmacs verified")

	fmt.Fprintf(w, "%s %s\n", fieldName("boot tag:"), c.BootTag)
	fmt.Fprintf(w, "%s %d commands, %d bytes loaded\n", fieldName("section:"), len(c.Commands), c.LoadSize())
	for i, cmd := range c.Commands {
		fmt.Fprintf(w, "  %3d  %s\n", i, cmd)
	}
}

func showSignedImage(w io.Writer, img *signing.Image) {
	fmt.Fprintf(w, "%s %d bytes\n", fieldName("plain image:"), len(img.Plain))
	fmt.Fprintf(w, "%s 0x%08X\n", fieldName("image type:"), img.ImageType)
	fmt.Fprintf(w, "%s %d\n", fieldName("build number:"), img.BuildNumber)
	fmt.Fprintf(w, "%s %s\n", fieldName("certificate:"), img.Certificate.Subject)
	showTrust(w, img.Certificate, img.RotKeyHashes)
	good.Fprintln(w, "signature verified")
}

func showTrust(w io.Writer, cert *x509.Certificate, hashes certificate.RotKeyHashes) {
	h, err := certificate.RotKeyHash(cert)
	if err != nil {
		bad.Fprintf(w, "certificate key: %v\n", err)
		return
	}
	for i, k := range hashes {
		marker := " "
		if k == h {
			marker = "*"
		}
		fmt.Fprintf(w, "  %s rot key %d: %s\n", marker, i, hex.EncodeToString(k[:]))
	}
	rotkh := hashes.TableHash()
	fmt.Fprintf(w, "%s %s\n", fieldName("rotkh:"), hex.EncodeToString(rotkh[:]))
	if hashes.Contains(h) {
		good.Fprintln(w, "certificate is a root of trust key")
	} else {
		bad.Fprintln(w, "certificate is not a root of trust key")
	}
}

// readHead reads up to n bytes from the start of path.
func readHead(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, n)
	m, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return buf[:m], nil
}
