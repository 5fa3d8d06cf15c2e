// Package signing assembles and verifies signed plain images for LPC55 parts.
//
// # Overview
//
// A signed image is the plain application image followed by a certificate
// block and an RSA signature:
//   - the image, zero padded to 4 bytes, with its header patched at 0x20
//     (total length), 0x24 (image type) and 0x28 (certificate block offset)
//   - a 32-byte certificate block header
//   - the certificate length and the DER certificate, padded to 4 bytes
//   - the four root-of-trust key hashes
//   - an RSA-2048 PKCS#1 v1.5 SHA-256 signature over all of the above
//
// # Basic Usage
//
//	key, err := certificate.LoadPrivateKey("root0_key.pem")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	hashes, err := certificate.NewRotKeyHashes(rootCerts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	s := signing.New(key, signing.WithBuildNumber(1))
//	signed, err := s.Sign(image, rootCertDER, hashes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Verification
//
// Sign checks its own output by default. Parse verifies any signed image
// against the certificate it carries:
//
//	img, err := signing.Parse(signed)
//	if errors.Is(err, certificate.ErrSignatureInvalid) {
//	    // tampered or signed with a different key
//	}
//
// # Logging
//
// Integrate with any logging framework through the Logger interface:
//
//	s := signing.New(key, signing.WithLogger(myLogger))
package signing
