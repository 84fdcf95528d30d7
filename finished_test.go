package ks13

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Property: Finished symmetry. Verify(k, ts, MAC(k, ts)) succeeds for all
// k, ts.
func TestFinishedSymmetry(t *testing.T) {
	f := NewFinished(SHA256)
	secret := hexBytes(t, rfc8448ServerHSSecret)

	key, err := f.Key(secret)
	require.NoError(t, err)

	transcript := NewTranscriptHash(SHA256)
	transcript.Update([]byte("ClientHello"))
	transcript.Update([]byte("ServerHello"))
	transcript.Update([]byte("EncryptedExtensions"))
	transcript.Update([]byte("Certificate"))
	transcript.Update([]byte("CertificateVerify"))
	digest := transcript.Snapshot()

	verifyData := f.MAC(key, digest)
	require.NoError(t, f.Verify(key, digest, verifyData))
}

func TestFinishedVerifyRejectsTamperedMAC(t *testing.T) {
	f := NewFinished(SHA256)
	key, err := f.Key(hexBytes(t, rfc8448ServerHSSecret))
	require.NoError(t, err)

	digest := NewTranscriptHash(SHA256).Snapshot()
	verifyData := f.MAC(key, digest)

	tampered := append([]byte(nil), verifyData...)
	tampered[len(tampered)-1] ^= 0x01

	err = f.Verify(key, digest, tampered)
	require.Error(t, err)
	assert.True(t, Is(err, BadFinished))
}

func TestFinishedVerifyRejectsWrongTranscript(t *testing.T) {
	f := NewFinished(SHA256)
	key, err := f.Key(hexBytes(t, rfc8448ServerHSSecret))
	require.NoError(t, err)

	digest := NewTranscriptHash(SHA256).Snapshot()
	verifyData := f.MAC(key, digest)

	other := NewTranscriptHash(SHA256)
	other.Update([]byte("different transcript"))

	err = f.Verify(key, other.Snapshot(), verifyData)
	require.Error(t, err)
	assert.True(t, Is(err, BadFinished))
}

func TestFinishedKeyRejectsWrongSecretLength(t *testing.T) {
	f := NewFinished(SHA384)
	_, err := f.Key(make([]byte, SHA384.Size()-1))
	require.Error(t, err)
	assert.True(t, Is(err, InvalidLength))
}

// FinishedKey and VerifyData are distinct types; this test exists so that
// a future edit accidentally collapsing them back into a single []byte
// alias (the s2n-tls aliasing bug this package's design explicitly avoids)
// fails here rather than silently reintroducing it.
func TestFinishedKeyAndVerifyDataAreDistinctTypes(t *testing.T) {
	var _ FinishedKey = FinishedKey{0x01}
	var _ VerifyData = VerifyData{0x01}
	assert.NotEqual(t, reflect.TypeOf(FinishedKey(nil)), reflect.TypeOf(VerifyData(nil)))
	assert.NotEqual(t, reflect.TypeOf([]byte(nil)), reflect.TypeOf(FinishedKey(nil)))
	assert.NotEqual(t, reflect.TypeOf([]byte(nil)), reflect.TypeOf(VerifyData(nil)))
}
