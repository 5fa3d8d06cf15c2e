// Package sb2 parses LPC55 secure binary (SB2.1) containers.
//
// # Container Layout
//
// An SB2.1 container is read front to back:
//
//	[HEADER(96)][DIGEST_HMAC(32)][KEYBLOB(80)][CERT_BLOCK_HEADER(32)]
//	[CERT_LENGTH(4)][CERT(N)][ROT_KEY_HASHES(128)][SIGNATURE(256)]
//	[BOOT_TAG(16)][HMAC_TABLE(64)][SECTION...]
//
// Everything up to and including the root key hashes is covered by an RSA
// PKCS#1 v1.5 SHA-256 signature. The boot tag and section are AES-256-CTR
// encrypted. The counter for each 16-byte block is the header nonce with its
// last word advanced by the block's position in the file.
//
// # Keys
//
// The data encryption key and the MAC key are wrapped with the fixed key
// KEK. The HMAC table holds HMAC-SHA256 of the ciphered boot tag and section,
// and the digest HMAC after the header authenticates the table.
//
// # Parsing
//
// Use Parse for files, ParseReader for streams and ParseBytes for buffers:
//
//	c, err := sb2.Parse("firmware.sb2")
//	if err != nil {
//	    return err
//	}
//	for _, cmd := range c.Commands {
//	    fmt.Println(cmd)
//	}
//
// All HMACs are checked before anything is decrypted.
//
// # Sniffing
//
// Sniff tells firmware files apart by their magic numbers:
//
//	ft, err := sb2.Sniff(data)
//	// ft is one of Elf, UnsignedBin, SignedBin, Sb20, Sb21
//
// # Errors
//
// Failures match the sentinel errors of this package and of packages command
// and certificate with errors.Is, for example ErrMalformedHeader,
// ErrAuthentication, certificate.ErrSignatureInvalid or command.ErrCRCMismatch.
package sb2
