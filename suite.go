package ks13

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/chacha20poly1305"
)

// HashAlg identifies the HMAC hash underlying a cipher suite's key schedule.
// RFC 8446 only ever negotiates SHA-256 or SHA-384 for TLS 1.3.
type HashAlg int

const (
	SHA256 HashAlg = iota
	SHA384
)

// New returns a fresh hash.Hash instance for the algorithm.
func (a HashAlg) New() hash.Hash {
	switch a {
	case SHA256:
		return sha256.New()
	case SHA384:
		return sha512.New384()
	default:
		panic("ks13: unknown hash algorithm")
	}
}

// Size returns Hlen, the output length of the algorithm in bytes.
func (a HashAlg) Size() int {
	switch a {
	case SHA256:
		return sha256.Size
	case SHA384:
		return sha512.Size384
	default:
		panic("ks13: unknown hash algorithm")
	}
}

func (a HashAlg) String() string {
	switch a {
	case SHA256:
		return "SHA256"
	case SHA384:
		return "SHA384"
	default:
		return "unknown"
	}
}

// CipherSuite fixes the HKDF hash and the AEAD key/IV lengths that the
// key schedule and traffic key deriver need. Negotiating a CipherSuite from
// a ClientHello/ServerHello exchange is out of scope for this package; the
// three RFC 8446 mandatory suites are provided as ready-made values for
// callers that don't need their own registry.
type CipherSuite struct {
	Name   string
	Hash   HashAlg
	KeyLen int
	IVLen  int
}

var (
	TLS_AES_128_GCM_SHA256 = CipherSuite{
		Name:   "TLS_AES_128_GCM_SHA256",
		Hash:   SHA256,
		KeyLen: 16,
		IVLen:  12,
	}
	TLS_AES_256_GCM_SHA384 = CipherSuite{
		Name:   "TLS_AES_256_GCM_SHA384",
		Hash:   SHA384,
		KeyLen: 32,
		IVLen:  12,
	}
	TLS_CHACHA20_POLY1305_SHA256 = CipherSuite{
		Name:   "TLS_CHACHA20_POLY1305_SHA256",
		Hash:   SHA256,
		KeyLen: chacha20poly1305.KeySize,
		IVLen:  chacha20poly1305.NonceSize,
	}
)
