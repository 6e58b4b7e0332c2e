// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package key

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinklabs-io/gjormungandr/wire"
)

var testSeed = []byte("test string of 32 byte of length")

func TestHashBytes(t *testing.T) {
	h1 := HashBytes([]byte("hello"))
	h2 := HashBytes([]byte("hello"))
	h3 := HashBytes([]byte("world"))
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1.Bytes(), HashSize)
}

func TestHashSerializeRoundTrip(t *testing.T) {
	h := HashBytes([]byte("some data"))
	var buf bytes.Buffer
	require.NoError(t, h.Serialize(&buf))
	require.Len(t, buf.Bytes(), HashSize)

	decoded, err := DecodeHash(wire.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, h, decoded)
}

func TestHashBech32(t *testing.T) {
	h := HashBytes([]byte("some data"))
	encoded := h.Bech32("block")
	assert.True(t, len(encoded) > 0)
	assert.Contains(t, encoded, "block1")
}

func TestPrivateKeySignVerify(t *testing.T) {
	priv, err := NewPrivateKeyFromSeed(testSeed)
	require.NoError(t, err)
	pub := priv.Public()

	msg := []byte("test message")
	sig := priv.Sign(msg)

	scheme := Ed25519Scheme{}
	require.NoError(
		t,
		scheme.VerifySignature(pub.Bytes(), msg, sig.Bytes()),
	)
}

func TestVerifySignatureMismatch(t *testing.T) {
	priv, err := NewPrivateKeyFromSeed(testSeed)
	require.NoError(t, err)
	pub := priv.Public()
	sig := priv.Sign([]byte("test message"))

	scheme := Ed25519Scheme{}
	err = scheme.VerifySignature(
		pub.Bytes(),
		[]byte("other message"),
		sig.Bytes(),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifySignatureBitFlip(t *testing.T) {
	priv, err := NewPrivateKeyFromSeed(testSeed)
	require.NoError(t, err)
	pub := priv.Public()
	msg := []byte("test message")
	sig := priv.Sign(msg)

	scheme := Ed25519Scheme{}
	for i := range SignatureSize {
		corrupted := sig
		corrupted[i] ^= 0x01
		assert.Error(
			t,
			scheme.VerifySignature(pub.Bytes(), msg, corrupted.Bytes()),
			"flipping signature byte %d should fail verification",
			i,
		)
	}
}

func TestVerifySignatureBadSizes(t *testing.T) {
	scheme := Ed25519Scheme{}
	err := scheme.VerifySignature(
		[]byte{1, 2, 3},
		[]byte("msg"),
		make([]byte, SignatureSize),
	)
	require.Error(t, err)
	err = scheme.VerifySignature(
		make([]byte, PublicKeySize),
		[]byte("msg"),
		[]byte{1, 2, 3},
	)
	require.Error(t, err)
}

func TestNewPrivateKeyFromSeedBadLength(t *testing.T) {
	_, err := NewPrivateKeyFromSeed([]byte("short"))
	require.Error(t, err)
}

func TestGeneratePrivateKey(t *testing.T) {
	priv1, err := GeneratePrivateKey()
	require.NoError(t, err)
	priv2, err := GeneratePrivateKey()
	require.NoError(t, err)
	assert.NotEqual(t, priv1.Public(), priv2.Public())
}

func TestSignSerializable(t *testing.T) {
	priv, err := NewPrivateKeyFromSeed(testSeed)
	require.NoError(t, err)

	h := HashBytes([]byte("payload"))
	sig, err := priv.SignSerializable(h)
	require.NoError(t, err)

	// The signature covers exactly the canonical payload bytes
	raw, err := SerializeToBytes(h)
	require.NoError(t, err)
	scheme := Ed25519Scheme{}
	require.NoError(
		t,
		scheme.VerifySignature(priv.Public().Bytes(), raw, sig.Bytes()),
	)
}

func TestPublicKeySerializeRoundTrip(t *testing.T) {
	priv, err := NewPrivateKeyFromSeed(testSeed)
	require.NoError(t, err)
	pub := priv.Public()

	var buf bytes.Buffer
	require.NoError(t, pub.Serialize(&buf))
	decoded, err := DecodePublicKey(wire.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, pub, decoded)
}
