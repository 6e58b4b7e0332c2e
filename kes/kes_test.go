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

package kes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test seed (exactly 32 bytes)
var testSeed = []byte("test string of 32 byte of length")

func TestKeyGen(t *testing.T) {
	sk, pk, err := KeyGen(testSeed)
	require.NoError(t, err, "KeyGen failed")
	require.NotNil(t, sk, "secret key is nil")
	require.Len(t, pk, PublicKeySize, "public key wrong size")
	require.Equal(t, uint64(0), sk.Period(), "initial period should be 0")
	assert.Equal(t, pk, sk.PublicKey(), "PublicKey should match KeyGen output")
}

func TestKeyGenInvalidSeed(t *testing.T) {
	_, _, err := KeyGen([]byte("short"))
	require.Error(t, err, "expected error for short seed")
}

func TestSignAndVerify(t *testing.T) {
	sk, pk, err := KeyGen(testSeed)
	require.NoError(t, err, "KeyGen failed")

	message := []byte("test message")
	sig, err := sk.Sign(message)
	require.NoError(t, err, "Sign failed")
	require.Len(t, sig, SignatureSize, "signature wrong size")

	require.NoError(t, VerifySignature(pk, 0, message, sig))
}

func TestVerifyWrongPeriod(t *testing.T) {
	sk, pk, err := KeyGen(testSeed)
	require.NoError(t, err, "KeyGen failed")

	sig, err := sk.Sign([]byte("test message"))
	require.NoError(t, err, "Sign failed")

	err = VerifySignature(pk, 1, []byte("test message"), sig)
	require.Error(t, err, "signature for period 0 must not verify at period 1")
	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestVerifyWrongMessage(t *testing.T) {
	sk, pk, err := KeyGen(testSeed)
	require.NoError(t, err, "KeyGen failed")

	sig, err := sk.Sign([]byte("test message"))
	require.NoError(t, err, "Sign failed")

	err = VerifySignature(pk, 0, []byte("other message"), sig)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestVerifyCorruptedSignature(t *testing.T) {
	sk, pk, err := KeyGen(testSeed)
	require.NoError(t, err, "KeyGen failed")

	message := []byte("test message")
	sig, err := sk.Sign(message)
	require.NoError(t, err, "Sign failed")

	// Corrupt one byte at several positions across the signature: the
	// leaf sigma and each level's public key pair
	for _, pos := range []int{0, SigmaSize, SigmaSize + 64, len(sig) - 1} {
		corrupted := make([]byte, len(sig))
		copy(corrupted, sig)
		corrupted[pos] ^= 0x01
		assert.Error(
			t,
			VerifySignature(pk, 0, message, corrupted),
			"corrupting byte %d should fail verification",
			pos,
		)
	}
}

func TestVerifyMalformedSignature(t *testing.T) {
	_, pk, err := KeyGen(testSeed)
	require.NoError(t, err, "KeyGen failed")

	err = VerifySignature(pk, 0, []byte("test"), make([]byte, 10))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestVerifyOutOfRangePeriod(t *testing.T) {
	sk, pk, err := KeyGen(testSeed)
	require.NoError(t, err, "KeyGen failed")

	sig, err := sk.Sign([]byte("test"))
	require.NoError(t, err, "Sign failed")

	err = VerifySignature(pk, MaxPeriods, []byte("test"), sig)
	require.Error(t, err, "period beyond the tree depth must fail")
}

func TestEvolveAndSign(t *testing.T) {
	sk, pk, err := KeyGen(testSeed)
	require.NoError(t, err, "KeyGen failed")

	message := []byte("test message")
	for period := uint64(0); period < 5; period++ {
		require.Equal(t, period, sk.Period())
		sig, err := sk.Sign(message)
		require.NoError(t, err, "Sign failed at period %d", period)
		require.NoError(
			t,
			VerifySignature(pk, period, message, sig),
			"verification failed at period %d",
			period,
		)
		// The root public key never changes
		assert.Equal(t, pk, sk.PublicKey())
		require.NoError(t, sk.Evolve())
	}
}

func TestEvolveAcrossSubtreeBoundary(t *testing.T) {
	sk, pk, err := KeyGen(testSeed)
	require.NoError(t, err, "KeyGen failed")

	// Period 31 -> 32 crosses the top-level left/right boundary
	for range 32 {
		require.NoError(t, sk.Evolve())
	}
	require.Equal(t, uint64(32), sk.Period())

	message := []byte("after the boundary")
	sig, err := sk.Sign(message)
	require.NoError(t, err, "Sign failed")
	require.NoError(t, VerifySignature(pk, 32, message, sig))
}

func TestEvolveExhaustion(t *testing.T) {
	sk, _, err := KeyGen(testSeed)
	require.NoError(t, err, "KeyGen failed")

	for range MaxPeriods - 1 {
		require.NoError(t, sk.Evolve())
	}
	require.Equal(t, uint64(MaxPeriods-1), sk.Period())
	require.Error(t, sk.Evolve(), "evolving past the last period must fail")
}

func TestEvolvedSignatureNotValidForEarlierPeriod(t *testing.T) {
	sk, pk, err := KeyGen(testSeed)
	require.NoError(t, err, "KeyGen failed")
	require.NoError(t, sk.Evolve())

	message := []byte("test message")
	sig, err := sk.Sign(message)
	require.NoError(t, err, "Sign failed")

	require.NoError(t, VerifySignature(pk, 1, message, sig))
	require.Error(
		t,
		VerifySignature(pk, 0, message, sig),
		"signature from period 1 must not verify at period 0",
	)
}

func TestScheme(t *testing.T) {
	sk, pk, err := KeyGen(testSeed)
	require.NoError(t, err, "KeyGen failed")

	message := []byte("test message")
	sig, err := sk.Sign(message)
	require.NoError(t, err, "Sign failed")

	require.NoError(t, Scheme{Period: 0}.VerifySignature(pk, message, sig))
	require.Error(t, Scheme{Period: 3}.VerifySignature(pk, message, sig))
}
