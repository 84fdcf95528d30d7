package ks13

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Property: snapshot non-disturbance. Taking N snapshots between two
// Update calls yields the same digest each time, and a subsequent Update
// still produces the expected final digest.
func TestSnapshotNonDisturbance(t *testing.T) {
	th := NewTranscriptHash(SHA256)
	th.Update([]byte("ClientHello"))

	first := th.Snapshot()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, th.Snapshot())
	}

	th.Update([]byte("ServerHello"))
	afterSecond := th.Snapshot()

	reference := NewTranscriptHash(SHA256)
	reference.Update([]byte("ClientHello"))
	reference.Update([]byte("ServerHello"))
	assert.Equal(t, reference.Snapshot(), afterSecond)
	assert.NotEqual(t, first, afterSecond)
}

func TestEmptyTranscriptIsHashOfEmptyString(t *testing.T) {
	// SHA-256("") is a fixed, widely published constant.
	const sha256Empty = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	got := NewTranscriptHash(SHA256).Snapshot()
	assert.Equal(t, hexBytes(t, sha256Empty), got)
}

func TestTranscriptHashAlg(t *testing.T) {
	assert.Equal(t, SHA384, NewTranscriptHash(SHA384).HashAlg())
}
