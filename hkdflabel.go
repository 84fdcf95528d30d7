// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ks13

import (
	"encoding/binary"
	"hash"

	"github.com/metacubex/hkdf"
)

// Labels for HKDF-Expand-Label as defined in RFC 8446, Section 7.1. Only
// the labels this package actually emits are named; "ext binder",
// "res binder", "c e traffic", "e exp master", "exp master", and
// "res master" belong to PSK/0-RTT/exporter/resumption derivations this
// package does not perform.
const (
	labelDerived       = "derived"
	labelClientHSTraf  = "c hs traffic"
	labelServerHSTraf  = "s hs traffic"
	labelClientAPTraf  = "c ap traffic"
	labelServerAPTraf  = "s ap traffic"
	labelTrafficKey    = "key"
	labelTrafficIV     = "iv"
	labelFinished      = "finished"
	hkdfLabelPrefix    = "tls13 "
	maxHkdfLabelLength = 255
)

// hkdfExtract wraps HKDF-Extract (RFC 5869, Section 2.2). A nil ikm means
// "the zero-length IKM case", which per RFC 5869/RFC 8446 is computed over
// an explicit Hlen-byte zero block, not over zero bytes written: HMAC's
// message argument is length-sensitive in a way its key argument is not,
// so this substitution has to happen before the HMAC call, never after.
func hkdfExtract[H hash.Hash](newHash func() H, salt, ikm []byte) ([]byte, error) {
	if ikm == nil {
		ikm = make([]byte, newHash().Size())
	}
	prk, err := hkdf.Extract(newHash, ikm, salt)
	if err != nil {
		return nil, &Error{Kind: HmacFailure, Op: "HKDF-Extract", Err: err}
	}
	return prk, nil
}

// hkdfExpand wraps HKDF-Expand (RFC 5869, Section 2.3). length must not
// exceed 255*Hlen; the underlying library enforces this but we classify
// the failure as InvalidLength rather than leaking it as HmacFailure.
func hkdfExpand[H hash.Hash](newHash func() H, prk []byte, info string, length int) ([]byte, error) {
	if length > maxHkdfLabelLength*newHash().Size() {
		return nil, &Error{Kind: InvalidLength, Op: "HKDF-Expand"}
	}
	okm, err := hkdf.Expand(newHash, prk, info, length)
	if err != nil {
		return nil, &Error{Kind: HmacFailure, Op: "HKDF-Expand", Err: err}
	}
	return okm, nil
}

// ExpandLabel implements HKDF-Expand-Label from RFC 8446, Section 7.1:
//
//	HKDF-Expand-Label(Secret, Label, Context, Length) =
//	    HKDF-Expand(Secret, HkdfLabel, Length)
//
// where HkdfLabel is the length-prefixed structure built below, with the
// literal six-byte ASCII prefix "tls13 " on every label.
func ExpandLabel[H hash.Hash](newHash func() H, secret []byte, label string, context []byte, length int) ([]byte, error) {
	if len(hkdfLabelPrefix)+len(label) > maxHkdfLabelLength || len(context) > maxHkdfLabelLength {
		return nil, &Error{Kind: InvalidLength, Op: "HKDF-Expand-Label"}
	}
	hkdfLabel := make([]byte, 0, 2+1+len(hkdfLabelPrefix)+len(label)+1+len(context))
	hkdfLabel = binary.BigEndian.AppendUint16(hkdfLabel, uint16(length))
	hkdfLabel = append(hkdfLabel, byte(len(hkdfLabelPrefix)+len(label)))
	hkdfLabel = append(hkdfLabel, hkdfLabelPrefix...)
	hkdfLabel = append(hkdfLabel, label...)
	hkdfLabel = append(hkdfLabel, byte(len(context)))
	hkdfLabel = append(hkdfLabel, context...)
	return hkdfExpand(newHash, secret, string(hkdfLabel), length)
}

// DeriveSecret implements Derive-Secret from RFC 8446, Section 7.1:
//
//	Derive-Secret(Secret, Label, Messages) =
//	    HKDF-Expand-Label(Secret, Label, Transcript-Hash(Messages), Hlen)
//
// transcriptDigest is the caller's already-taken transcript snapshot;
// this function never touches a running hash itself.
func DeriveSecret[H hash.Hash](newHash func() H, secret []byte, label string, transcriptDigest []byte) ([]byte, error) {
	return ExpandLabel(newHash, secret, label, transcriptDigest, newHash().Size())
}
