// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ks13

import (
	"crypto/hmac"

	"go.uber.org/zap"
)

// FinishedKey and VerifyData are both Hlen-byte buffers, but RFC 8446
// Section 4.4.4 never lets one stand in for the other: a FinishedKey MACs
// a transcript to produce a VerifyData, and a VerifyData is only ever
// compared, never used as a MAC key. s2n-tls's C implementation aliases
// both as conn->handshake.server_finished/client_finished — a finished
// key on the TLS 1.3 path, a finished value on the TLS 1.2 path — and this
// distinction is exactly what that aliasing loses. Giving them distinct
// Go types turns the mistake into a compile error.
type FinishedKey []byte
type VerifyData []byte

// Finished derives finished_key from a handshake traffic secret and
// produces/verifies the verify_data MAC over a transcript snapshot, per
// RFC 8446 Section 4.4.4.
type Finished struct {
	alg    HashAlg
	logger *zap.Logger
}

// FinishedOption configures a Finished engine at construction time.
type FinishedOption func(*Finished)

// WithFinishedLogger attaches a structured logger for key-derivation and
// verification tracing (metadata only, never key/MAC bytes).
func WithFinishedLogger(l *zap.Logger) FinishedOption {
	return func(f *Finished) { f.logger = l }
}

// NewFinished builds a Finished engine bound to the negotiated hash.
func NewFinished(alg HashAlg, opts ...FinishedOption) *Finished {
	f := &Finished{alg: alg}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = nopIfNil(f.logger)
	return f
}

// Key derives finished_key from a handshake traffic secret:
//
//	finished_key = HKDF-Expand-Label(handshake_traffic_secret, "finished", "", Hlen)
func (f *Finished) Key(handshakeTrafficSecret []byte) (FinishedKey, error) {
	if len(handshakeTrafficSecret) != f.alg.Size() {
		return nil, &Error{Kind: InvalidLength, Op: "finished_key"}
	}
	k, err := ExpandLabel(f.alg.New, handshakeTrafficSecret, labelFinished, nil, f.alg.Size())
	if err != nil {
		return nil, err
	}
	f.logger.Debug("finished: derived finished key", zap.String("hash", f.alg.String()))
	return FinishedKey(k), nil
}

// MAC computes verify_data = HMAC(key=finished_key, msg=Transcript-Hash(...))
// over a transcript snapshot the caller took before calling this — the
// handshake_context boundary (through CertificateVerify for the server's
// Finished, through the server's Finished for the client's) is the
// caller's responsibility, this function only MACs whatever digest it's
// handed.
func (f *Finished) MAC(key FinishedKey, transcriptSnapshot []byte) VerifyData {
	mac := hmac.New(f.alg.New, key)
	mac.Write(transcriptSnapshot)
	return mac.Sum(nil)
}

// Verify recomputes verify_data against key and transcriptSnapshot and
// compares it to wire in constant time via hmac.Equal, which compares the
// full length regardless of where the first mismatch falls. A mismatch is
// reported as BadFinished, not a boolean, so callers can't accidentally
// ignore it.
func (f *Finished) Verify(key FinishedKey, transcriptSnapshot []byte, wire VerifyData) error {
	expected := f.MAC(key, transcriptSnapshot)
	if !hmac.Equal(expected, wire) {
		f.logger.Debug("finished: verify_data mismatch", zap.String("hash", f.alg.String()))
		return &Error{Kind: BadFinished, Op: "finished_verify"}
	}
	return nil
}
