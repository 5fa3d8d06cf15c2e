// Package certificate handles the RSA certificates and signatures used by
// LPC55 signed images and SB2.1 containers.
//
// Signatures are RSA PKCS#1 v1.5 over SHA-256. Only certificates whose subject
// public key uses the rsaEncryption algorithm are accepted.
//
// # Root of Trust
//
// The boot ROM trusts up to four root keys. Each key is identified by the
// SHA-256 of its modulus followed by its exponent (RotKeyHash), and the device
// stores the SHA-256 of the four hashes (RotKeyHashes.TableHash):
//
//	certs := []*x509.Certificate{c0, c1, c2, c3}
//	hashes, err := certificate.NewRotKeyHashes(certs)
//	rotkh := hashes.TableHash()
package certificate
