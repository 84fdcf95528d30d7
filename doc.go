// Package ks13 implements the TLS 1.3 key schedule and handshake Finished
// verification as specified in RFC 8446, Section 7.1 and Section 4.4.4.
//
// The package covers the HKDF-based derivation chain from early secret
// through application traffic secrets, per-direction traffic key/IV
// derivation, and the Finished MAC. It does not perform record I/O, AEAD
// sealing/opening, certificate validation, ClientHello/ServerHello parsing,
// or the ECDHE key exchange itself — those are the caller's responsibility.
package ks13
