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

// Package vrf implements ECVRF-ED25519-SHA512-Elligator2 as specified
// in IETF draft-irtf-cfrg-vrf-03. The VRF proves slot leadership: the
// proof is a publicly verifiable pseudorandom output bound to the
// prover's key and the slot input, without revealing the key.
//
// SHA-512 is mandated by the VRF suite and by RFC 8032 for Ed25519
// scalar derivation; Blake2b-256 is used only for building slot inputs.
package vrf

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/blake2b"
)

const (
	// Suite is the VRF suite identifier for ECVRF-ED25519-SHA512-Elligator2
	Suite = 0x04

	// ProofSize is the size of a VRF proof:
	// gamma (32) || challenge (16) || scalar (32)
	ProofSize = 80

	// OutputSize is the size of a VRF output
	OutputSize = sha512.Size

	// SeedSize is the size of a VRF seed/secret key
	SeedSize = 32

	// PublicKeySize is the size of a VRF public key
	PublicKeySize = 32
)

// ErrMalformedProof indicates proof bytes that fail the structural
// well-formedness check (wrong length, or a gamma component that is not
// a valid curve point). This is a decoding-level failure, distinct from
// a well-formed proof that does not verify.
var ErrMalformedProof = errors.New("malformed vrf proof")

// ErrVerificationFailed indicates a well-formed proof that does not
// verify against the given public key and input.
var ErrVerificationFailed = errors.New("vrf proof verification failed")

// CheckProof verifies structural well-formedness of proof bytes without
// attempting cryptographic verification.
func CheckProof(pi []byte) error {
	_, _, _, err := decodeProof(pi)
	return err
}

// KeyGen generates a VRF keypair from a 32-byte seed. The secret key is
// the seed itself; the public key is the Ed25519 point derived from it
// per RFC 8032.
func KeyGen(seed []byte) ([]byte, []byte, error) {
	if len(seed) != SeedSize {
		return nil, nil, fmt.Errorf(
			"seed must be %d bytes, got %d",
			SeedSize,
			len(seed),
		)
	}

	h := sha512.Sum512(seed)
	x := edwards25519.NewScalar()
	if _, err := x.SetBytesWithClamping(h[:32]); err != nil {
		return nil, nil, err
	}
	pub := (&edwards25519.Point{}).ScalarBaseMult(x).Bytes()

	secretKey := make([]byte, SeedSize)
	copy(secretKey, seed)
	return pub, secretKey, nil
}

// Prove generates a VRF proof and output for the given secret key and
// input. The proof is ProofSize bytes, the output OutputSize bytes.
func Prove(secretKey []byte, alpha []byte) ([]byte, []byte, error) {
	if len(secretKey) != SeedSize {
		return nil, nil, fmt.Errorf(
			"secret key must be %d bytes, got %d",
			SeedSize,
			len(secretKey),
		)
	}

	// Secret scalar x per RFC 8032, public point Y = x*B
	skHash := sha512.Sum512(secretKey)
	x := edwards25519.NewScalar()
	if _, err := x.SetBytesWithClamping(skHash[:32]); err != nil {
		return nil, nil, err
	}
	Y := (&edwards25519.Point{}).ScalarBaseMult(x)

	// H = hash-to-curve(Y, alpha), Gamma = x*H
	H, err := hashToCurve(Y, alpha)
	if err != nil {
		return nil, nil, err
	}
	Gamma := (&edwards25519.Point{}).ScalarMult(x, H)

	// Deterministic nonce k from SHA512(SHA512(sk)[32:] || H)
	var nonceInput [64]byte
	copy(nonceInput[:32], skHash[32:])
	copy(nonceInput[32:], H.Bytes())
	nonceHash := sha512.Sum512(nonceInput[:])
	k := edwards25519.NewScalar()
	if _, err := k.SetUniformBytes(nonceHash[:]); err != nil {
		return nil, nil, err
	}

	// Challenge c over (H, Gamma, k*B, k*H), response s = k + c*x
	U := (&edwards25519.Point{}).ScalarBaseMult(k)
	V := (&edwards25519.Point{}).ScalarMult(k, H)
	c := hashPoints(H, Gamma, U, V)
	cBytes := c.Bytes()
	s := edwards25519.NewScalar().MultiplyAdd(c, x, k)

	proof := make([]byte, ProofSize)
	copy(proof[0:32], Gamma.Bytes())
	copy(proof[32:48], cBytes[:16])
	copy(proof[48:80], s.Bytes())

	output, err := ProofToHash(proof)
	if err != nil {
		return nil, nil, err
	}
	return proof, output, nil
}

// Verify verifies a VRF proof against a public key and input, returning
// the verified random output on success. Failures are reported as
// ErrMalformedProof (structural) or ErrVerificationFailed.
func Verify(publicKey []byte, proof []byte, alpha []byte) ([]byte, error) {
	Y := &edwards25519.Point{}
	if _, err := Y.SetBytes(publicKey); err != nil {
		return nil, fmt.Errorf(
			"%w: invalid public key: %w",
			ErrVerificationFailed,
			err,
		)
	}
	isSmallOrder := (&edwards25519.Point{}).MultByCofactor(Y).
		Equal(edwards25519.NewIdentityPoint()) == 1
	if isSmallOrder {
		return nil, fmt.Errorf(
			"%w: public key is a small order point",
			ErrVerificationFailed,
		)
	}

	Gamma, cArr, sArr, err := decodeProof(proof)
	if err != nil {
		return nil, err
	}
	H, err := hashToCurve(Y, alpha)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}

	// The challenge and response scalars are reduced mod L via
	// SetUniformBytes, which requires 64 bytes of input
	var cWide, sWide [64]byte
	copy(cWide[:], cArr[:])
	copy(sWide[:], sArr[:])
	c := edwards25519.NewScalar()
	_, _ = c.SetUniformBytes(cWide[:])
	s := edwards25519.NewScalar()
	_, _ = s.SetUniformBytes(sWide[:])

	// U = s*B - c*Y
	U := &edwards25519.Point{}
	U.Subtract(
		(&edwards25519.Point{}).ScalarBaseMult(s),
		(&edwards25519.Point{}).ScalarMult(c, Y),
	)
	// V = s*H - c*Gamma
	V := &edwards25519.Point{}
	V.Subtract(
		(&edwards25519.Point{}).ScalarMult(s, H),
		(&edwards25519.Point{}).ScalarMult(c, Gamma),
	)

	cPrime := hashPoints(H, Gamma, U, V)
	if subtle.ConstantTimeCompare(cArr[:], cPrime.Bytes()) != 1 {
		return nil, ErrVerificationFailed
	}
	return ProofToHash(proof)
}

// ProofToHash extracts the random output from a VRF proof without
// verifying it
func ProofToHash(pi []byte) ([]byte, error) {
	Gamma, _, _, err := decodeProof(pi)
	if err != nil {
		return nil, err
	}
	// beta = SHA512(suite || 0x03 || cofactor*Gamma)
	var hashInput [34]byte
	hashInput[0] = Suite
	hashInput[1] = 0x03
	Gamma.MultByCofactor(Gamma)
	copy(hashInput[2:], Gamma.Bytes())
	out := sha512.Sum512(hashInput[:])
	return out[:], nil
}

// SlotInput builds the VRF input for a slot: the Blake2b-256 hash of
// the big-endian slot number concatenated with 32 bytes of entropy.
// Panics if entropy is not exactly 32 bytes; callers derive it from a
// hash and cannot produce other lengths.
func SlotInput(slot uint64, entropy []byte) []byte {
	if len(entropy) != 32 {
		panic(fmt.Sprintf("entropy must be 32 bytes, got %d", len(entropy)))
	}
	concat := make([]byte, 8+32)
	binary.BigEndian.PutUint64(concat[:8], slot)
	copy(concat[8:], entropy)
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error creating empty blake2b hash: %s",
				err,
			),
		)
	}
	h.Write(concat)
	return h.Sum(nil)
}

// decodeProof splits proof bytes into the gamma point and the raw
// challenge/response scalar bytes
func decodeProof(
	pi []byte,
) (gamma *edwards25519.Point, c [32]byte, s [32]byte, err error) {
	if len(pi) != ProofSize {
		return nil, c, s, fmt.Errorf(
			"%w: unexpected length %d (must be %d)",
			ErrMalformedProof,
			len(pi),
			ProofSize,
		)
	}
	gamma = &edwards25519.Point{}
	if _, err := gamma.SetBytes(pi[:32]); err != nil {
		return nil, c, s, fmt.Errorf(
			"%w: invalid gamma encoding: %w",
			ErrMalformedProof,
			err,
		)
	}
	copy(c[:], pi[32:48])
	copy(s[:], pi[48:80])
	return gamma, c, s, nil
}
