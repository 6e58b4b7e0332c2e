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

// Package kes implements forward-secure key-evolving signatures using
// the MMM (Malkin-Micciancio-Miner) sum composition over Ed25519 with
// Blake2b-256 node hashing. The secret key is advanced in discrete
// periods; compromising the key at a later period cannot forge
// signatures for earlier ones.
//
// The chain uses a fixed tree depth of 6, giving 64 evolution periods
// and 448-byte signatures.
package kes

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

const (
	// SigmaSize is the size of the leaf Ed25519 signature
	SigmaSize = ed25519.SignatureSize

	// PublicKeySize is the size of a KES public key
	PublicKeySize = ed25519.PublicKeySize

	// SeedSize is the size of a KES seed
	SeedSize = 32

	// Depth is the sum-composition tree depth used by the chain
	Depth = 6

	// MaxPeriods is the number of evolution periods at the chain depth
	MaxPeriods = 1 << Depth

	// SignatureSize is the signature size at the chain depth:
	// 64 (leaf sigma) + Depth * 64 (public key pairs)
	SignatureSize = SigmaSize + Depth*2*PublicKeySize
)

// ErrVerificationFailed is the verification failure for a KES signature
// that does not match its message, public key, and period.
var ErrVerificationFailed = errors.New("kes signature verification failed")

// signatureSize returns the signature size for an arbitrary tree depth
func signatureSize(depth uint64) int {
	return SigmaSize + int(depth)*2*PublicKeySize // #nosec G115
}

// maxPeriod returns the number of periods for an arbitrary tree depth
func maxPeriod(depth uint64) uint64 {
	return uint64(1) << depth
}

// hashPair computes the Blake2b-256 hash of two public keys, which is
// the public key of their parent tree node
func hashPair(l []byte, r []byte) []byte {
	h, err := blake2b.New(PublicKeySize, nil)
	if err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error creating empty blake2b hash: %s",
				err,
			),
		)
	}
	h.Write(l)
	h.Write(r)
	return h.Sum(nil)
}

// VerifySignature verifies a KES signature at the chain depth against
// the given public key, period, and message. It returns nil on success
// and an error wrapping ErrVerificationFailed otherwise; a malformed
// signature or out-of-range period also fails verification.
func VerifySignature(
	pubKey []byte,
	period uint64,
	msg []byte,
	sig []byte,
) error {
	return verifyAtDepth(Depth, pubKey, period, msg, sig)
}

// verifyAtDepth walks the signature's merkle spine from the root down.
// At each level the signature carries the two child public keys; their
// hash must match the expected key for that node, and the period
// selects which child to descend into. At the leaf the remaining 64
// bytes are a plain Ed25519 signature over the message.
func verifyAtDepth(
	depth uint64,
	pubKey []byte,
	period uint64,
	msg []byte,
	sig []byte,
) error {
	if len(pubKey) != PublicKeySize {
		return fmt.Errorf(
			"%w: invalid public key size %d",
			ErrVerificationFailed,
			len(pubKey),
		)
	}
	if len(sig) != signatureSize(depth) {
		return fmt.Errorf(
			"%w: invalid signature size %d for depth %d",
			ErrVerificationFailed,
			len(sig),
			depth,
		)
	}
	if period >= maxPeriod(depth) {
		return fmt.Errorf(
			"%w: period %d out of range for depth %d",
			ErrVerificationFailed,
			period,
			depth,
		)
	}
	for level := depth; level > 0; level-- {
		childSize := signatureSize(level - 1)
		leftPk := sig[childSize : childSize+PublicKeySize]
		rightPk := sig[childSize+PublicKeySize : childSize+2*PublicKeySize]
		if !bytes.Equal(hashPair(leftPk, rightPk), pubKey) {
			return fmt.Errorf(
				"%w: public key mismatch at level %d",
				ErrVerificationFailed,
				level,
			)
		}
		half := uint64(1) << (level - 1)
		if period < half {
			pubKey = leftPk
		} else {
			pubKey = rightPk
			period -= half
		}
		sig = sig[:childSize]
	}
	if !ed25519.Verify(ed25519.PublicKey(pubKey), msg, sig) {
		return ErrVerificationFailed
	}
	return nil
}

// Scheme verifies key-evolving signatures at a fixed evolution period.
// It satisfies the signature scheme verification interface used by
// header proof verification.
type Scheme struct {
	Period uint64
}

func (s Scheme) VerifySignature(pubKey, msg, sig []byte) error {
	return VerifySignature(pubKey, s.Period, msg, sig)
}
