// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ks13

import "go.uber.org/zap"

// Stage is the KeySchedule's position in the RFC 8446 derivation chain.
// Stages only move forward: Initial -> Early -> Handshake -> Application.
type Stage int

const (
	StageInitial Stage = iota
	StageEarly
	StageHandshake
	StageApplication
)

func (s Stage) String() string {
	switch s {
	case StageInitial:
		return "initial"
	case StageEarly:
		return "early"
	case StageHandshake:
		return "handshake"
	case StageApplication:
		return "application"
	default:
		return "unknown"
	}
}

// TrafficSecrets holds the client- and server-direction secrets a single
// stage transition produces.
type TrafficSecrets struct {
	Client []byte
	Server []byte
}

// KeySchedule owns the rolling (extract_secret, derive_secret) pair RFC
// 8446 Section 7.1's key schedule diagram threads through every stage. It
// is scoped to one connection and is not safe for concurrent use: callers
// must serialize their own access, the same way they must serialize the
// handshake message stream the TranscriptHash it's paired with requires.
type KeySchedule struct {
	suite         CipherSuite
	extractSecret []byte
	deriveSecret  []byte
	stage         Stage
	logger        *zap.Logger
}

// Option configures a KeySchedule at construction time.
type Option func(*KeySchedule)

// WithLogger attaches a structured logger for stage-transition tracing.
func WithLogger(l *zap.Logger) Option {
	return func(ks *KeySchedule) { ks.logger = l }
}

// New allocates a KeySchedule in StageInitial, with both rolling secrets
// zeroed at Hlen bytes — they are never an uninitialized "option" type,
// closing the null-check ambiguity the source's nullable secret fields
// have.
func New(suite CipherSuite, opts ...Option) *KeySchedule {
	hlen := suite.Hash.Size()
	ks := &KeySchedule{
		suite:         suite,
		extractSecret: make([]byte, hlen),
		deriveSecret:  make([]byte, hlen),
		stage:         StageInitial,
	}
	for _, opt := range opts {
		opt(ks)
	}
	ks.logger = nopIfNil(ks.logger)
	return ks
}

// Stage reports the schedule's current position.
func (ks *KeySchedule) Stage() Stage { return ks.stage }

func (ks *KeySchedule) wrongStage(op string) error {
	return &Error{Kind: WrongStage, Op: op}
}

// DeriveEarly advances Initial -> Early, producing the Early Secret and
// its "derived" expansion. There are no prerequisites: this is always the
// first transition a schedule makes.
//
// PSK-based early traffic secrets and the resumption/external binder keys
// would also come from the Early Secret; this package doesn't emit them
// (see the Non-goals in this package's design spec).
func (ks *KeySchedule) DeriveEarly() error {
	if ks.stage != StageInitial {
		return ks.wrongStage("derive_early")
	}
	extract, err := hkdfExtract(ks.suite.Hash.New, nil, nil)
	if err != nil {
		return err
	}
	emptyTranscript := NewTranscriptHash(ks.suite.Hash).Snapshot()
	derive, err := DeriveSecret(ks.suite.Hash.New, extract, labelDerived, emptyTranscript)
	if err != nil {
		return err
	}
	ks.extractSecret = extract
	ks.deriveSecret = derive
	ks.stage = StageEarly
	ks.logger.Debug("key schedule: derived early secret",
		zap.String("hash", ks.suite.Hash.String()),
		zap.Stringer("stage", ks.stage))
	return nil
}

// DeriveHandshake advances Early -> Handshake, requiring the ECDHE shared
// secret and a transcript snapshot taken after ServerHello. It returns the
// client/server handshake traffic secrets and rolls derive_secret forward
// for DeriveApplication.
func (ks *KeySchedule) DeriveHandshake(ecdhe, transcriptAfterServerHello []byte) (TrafficSecrets, error) {
	if ks.stage != StageEarly {
		return TrafficSecrets{}, ks.wrongStage("derive_handshake")
	}
	hlen := ks.suite.Hash.Size()
	if len(transcriptAfterServerHello) != hlen {
		return TrafficSecrets{}, &Error{Kind: InvalidLength, Op: "derive_handshake"}
	}

	extract, err := hkdfExtract(ks.suite.Hash.New, ks.deriveSecret, ecdhe)
	if err != nil {
		return TrafficSecrets{}, err
	}
	clientTS, err := ExpandLabel(ks.suite.Hash.New, extract, labelClientHSTraf, transcriptAfterServerHello, hlen)
	if err != nil {
		return TrafficSecrets{}, err
	}
	serverTS, err := ExpandLabel(ks.suite.Hash.New, extract, labelServerHSTraf, transcriptAfterServerHello, hlen)
	if err != nil {
		return TrafficSecrets{}, err
	}
	emptyTranscript := NewTranscriptHash(ks.suite.Hash).Snapshot()
	derive, err := DeriveSecret(ks.suite.Hash.New, extract, labelDerived, emptyTranscript)
	if err != nil {
		return TrafficSecrets{}, err
	}

	zeroize(ks.extractSecret)
	zeroize(ks.deriveSecret)
	ks.extractSecret = extract
	ks.deriveSecret = derive
	ks.stage = StageHandshake
	ks.logger.Debug("key schedule: derived handshake secrets",
		zap.String("hash", ks.suite.Hash.String()),
		zap.Stringer("stage", ks.stage))
	return TrafficSecrets{Client: clientTS, Server: serverTS}, nil
}

// DeriveApplication advances Handshake -> Application, requiring a
// transcript snapshot taken after the server's Finished message. It
// returns the client/server application traffic secrets (traffic_secret_0
// in RFC 8446 terms).
//
// The exporter and resumption master secrets would derive from the same
// extract_secret this call produces, with labels "exp master"/"res
// master"; this package doesn't emit them.
func (ks *KeySchedule) DeriveApplication(transcriptAfterServerFinished []byte) (TrafficSecrets, error) {
	if ks.stage != StageHandshake {
		return TrafficSecrets{}, ks.wrongStage("derive_application")
	}
	hlen := ks.suite.Hash.Size()
	if len(transcriptAfterServerFinished) != hlen {
		return TrafficSecrets{}, &Error{Kind: InvalidLength, Op: "derive_application"}
	}

	extract, err := hkdfExtract(ks.suite.Hash.New, ks.deriveSecret, nil)
	if err != nil {
		return TrafficSecrets{}, err
	}
	clientTS, err := ExpandLabel(ks.suite.Hash.New, extract, labelClientAPTraf, transcriptAfterServerFinished, hlen)
	if err != nil {
		return TrafficSecrets{}, err
	}
	serverTS, err := ExpandLabel(ks.suite.Hash.New, extract, labelServerAPTraf, transcriptAfterServerFinished, hlen)
	if err != nil {
		return TrafficSecrets{}, err
	}

	zeroize(ks.extractSecret)
	zeroize(ks.deriveSecret)
	ks.extractSecret = extract
	ks.deriveSecret = nil
	ks.stage = StageApplication
	ks.logger.Debug("key schedule: derived application secrets",
		zap.String("hash", ks.suite.Hash.String()),
		zap.Stringer("stage", ks.stage))
	return TrafficSecrets{Client: clientTS, Server: serverTS}, nil
}

// Destroy zeroizes both rolling secrets. Safe to call from any stage,
// including after an error — per this package's error-handling design, an
// error leaves the schedule fit only for teardown.
func (ks *KeySchedule) Destroy() {
	zeroize(ks.extractSecret)
	zeroize(ks.deriveSecret)
}

// DeriveKeyIV is the stateless traffic-key deriver, RFC 8446 Section 7.3:
//
//	write_key = HKDF-Expand-Label(Secret, "key", "", key_length)
//	write_iv  = HKDF-Expand-Label(Secret, "iv", "", iv_length)
//
// It holds no state of its own; trafficSecret must be exactly alg.Size()
// bytes, whatever stage (handshake or application) it came from.
func DeriveKeyIV(alg HashAlg, trafficSecret []byte, keyLen, ivLen int) (key, iv []byte, err error) {
	if len(trafficSecret) != alg.Size() {
		return nil, nil, &Error{Kind: InvalidLength, Op: "derive_kiv"}
	}
	key, err = ExpandLabel(alg.New, trafficSecret, labelTrafficKey, nil, keyLen)
	if err != nil {
		return nil, nil, err
	}
	iv, err = ExpandLabel(alg.New, trafficSecret, labelTrafficIV, nil, ivLen)
	if err != nil {
		return nil, nil, err
	}
	return key, iv, nil
}
