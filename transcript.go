package ks13

// TranscriptHash is the running hash over the concatenation of all
// handshake-layer messages exchanged so far. It is created before
// ClientHello, updated after every handshake message, and snapshotted at
// the stage boundaries the key schedule needs.
type TranscriptHash struct {
	alg HashAlg
	h   hashState
}

// hashState is the subset of hash.Hash this package relies on; it exists
// only so TranscriptHash's zero value (no running hash yet) is visible in
// one place instead of sprinkling nil checks through schedule.go.
type hashState interface {
	Write(p []byte) (int, error)
	Sum(b []byte) []byte
}

// NewTranscriptHash creates a transcript hash over an empty message
// sequence. Snapshotting it immediately yields Hash(""), the digest E2E-2
// of this package's RFC 8448 conformance test needs for the Early Secret's
// "derived" derivation.
func NewTranscriptHash(alg HashAlg) *TranscriptHash {
	return &TranscriptHash{alg: alg, h: alg.New()}
}

// Update appends a handshake message to the running hash.
func (t *TranscriptHash) Update(message []byte) {
	t.h.Write(message)
}

// Snapshot returns the digest of every message written so far, without
// disturbing the running hash: Go's hash.Hash.Sum is specified to append
// the current hash to its argument and leave the underlying state
// untouched, so — unlike languages where a snapshot requires an explicit
// clone of the hash object — calling Sum(nil) mid-stream already gives a
// point-in-time digest for free.
func (t *TranscriptHash) Snapshot() []byte {
	return t.h.Sum(nil)
}

// HashAlg reports the hash algorithm backing this transcript.
func (t *TranscriptHash) HashAlg() HashAlg {
	return t.alg
}

// Destroy drops the reference to the running hash. hash.Hash implementations
// don't expose their internal buffers, so this can't scrub memory the way
// KeySchedule.Destroy zeroizes owned secrets — it only stops this handle
// from keeping the hash's internal state reachable.
func (t *TranscriptHash) Destroy() {
	t.h = nil
}
