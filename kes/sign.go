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
	"crypto/ed25519"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

const ed25519SeedSize = ed25519.SeedSize

// SecretKey is a KES signing key positioned at a single evolution
// period. Evolving the key destroys the material needed to sign at
// earlier periods.
//
// Key data layout for depth d > 0:
//
//	[active child key (depth d-1)][right seed (32)][left pk (32)][right pk (32)]
//
// At depth 0 the key data is a bare Ed25519 seed.
type SecretKey struct {
	depth  uint64
	period uint64
	data   []byte
}

// secretKeySize returns the key data size for a given depth:
// 32 (leaf seed) + depth * 96 (right seed + public key pair per level)
func secretKeySize(depth uint64) int {
	return ed25519SeedSize + int(depth)*(SeedSize+2*PublicKeySize) // #nosec G115
}

// KeyGen generates a KES keypair at the chain depth from a 32-byte
// seed. The returned secret key is positioned at period 0.
func KeyGen(seed []byte) (*SecretKey, []byte, error) {
	if len(seed) != SeedSize {
		return nil, nil, fmt.Errorf(
			"seed must be %d bytes, got %d",
			SeedSize,
			len(seed),
		)
	}
	data := make([]byte, secretKeySize(Depth))
	pubKey, err := genTree(Depth, seed, data)
	if err != nil {
		return nil, nil, err
	}
	sk := &SecretKey{
		depth: Depth,
		data:  data,
	}
	return sk, pubKey, nil
}

// genTree fills in the key data for a subtree and returns the subtree's
// public key. Only the left spine is fully materialized; right subtrees
// are represented by their stored seed until the key evolves into them.
func genTree(depth uint64, seed []byte, data []byte) ([]byte, error) {
	if depth == 0 {
		copy(data[:ed25519SeedSize], seed)
		priv := ed25519.NewKeyFromSeed(seed)
		return priv.Public().(ed25519.PublicKey), nil
	}

	leftSeed := expandSeed(seed, 0x01)
	rightSeed := expandSeed(seed, 0x02)

	childSize := secretKeySize(depth - 1)
	leftPk, err := genTree(depth-1, leftSeed, data[:childSize])
	if err != nil {
		return nil, err
	}
	rightPk, err := treePublicKey(depth-1, rightSeed)
	if err != nil {
		return nil, err
	}

	offset := childSize
	copy(data[offset:offset+SeedSize], rightSeed)
	offset += SeedSize
	copy(data[offset:offset+PublicKeySize], leftPk)
	offset += PublicKeySize
	copy(data[offset:offset+PublicKeySize], rightPk)

	return hashPair(leftPk, rightPk), nil
}

// treePublicKey derives the public key of a subtree from its seed
// without materializing any secret key data
func treePublicKey(depth uint64, seed []byte) ([]byte, error) {
	if depth == 0 {
		priv := ed25519.NewKeyFromSeed(seed)
		return priv.Public().(ed25519.PublicKey), nil
	}
	leftPk, err := treePublicKey(depth-1, expandSeed(seed, 0x01))
	if err != nil {
		return nil, err
	}
	rightPk, err := treePublicKey(depth-1, expandSeed(seed, 0x02))
	if err != nil {
		return nil, err
	}
	return hashPair(leftPk, rightPk), nil
}

// expandSeed derives a child seed using Blake2b-256 with a one-byte
// domain separator, matching the reference implementations
func expandSeed(seed []byte, separator byte) []byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(fmt.Sprintf("unexpected error creating blake2b hash: %s", err))
	}
	h.Write([]byte{separator})
	h.Write(seed)
	return h.Sum(nil)
}

// Period returns the evolution period the key is positioned at
func (k *SecretKey) Period() uint64 {
	return k.period
}

// PublicKey computes the root public key of the key's tree. The root
// key never changes as the key evolves.
func (k *SecretKey) PublicKey() []byte {
	if k.depth == 0 {
		priv := ed25519.NewKeyFromSeed(k.data[:ed25519SeedSize])
		return priv.Public().(ed25519.PublicKey)
	}
	offset := secretKeySize(k.depth-1) + SeedSize
	leftPk := k.data[offset : offset+PublicKeySize]
	rightPk := k.data[offset+PublicKeySize : offset+2*PublicKeySize]
	return hashPair(leftPk, rightPk)
}

// Sign signs a message at the key's current period, producing a
// signature of SignatureSize bytes
func (k *SecretKey) Sign(msg []byte) ([]byte, error) {
	if k == nil || len(k.data) != secretKeySize(k.depth) {
		return nil, errors.New("kes secret key is malformed")
	}
	sig := make([]byte, signatureSize(k.depth))

	data := k.data
	cur := sig
	for level := k.depth; level > 0; level-- {
		childKeySize := secretKeySize(level - 1)
		childSigSize := signatureSize(level - 1)
		// The public key pair for this level sits after the child key
		// and the stored right seed
		offset := childKeySize + SeedSize
		copy(cur[childSigSize:childSigSize+2*PublicKeySize],
			data[offset:offset+2*PublicKeySize])
		data = data[:childKeySize]
		cur = cur[:childSigSize]
	}
	priv := ed25519.NewKeyFromSeed(data[:ed25519SeedSize])
	copy(cur[:SigmaSize], ed25519.Sign(priv, msg))
	return sig, nil
}

// Evolve advances the key to the next period, destroying the secret
// material for the current one. It returns an error once the key is
// exhausted.
func (k *SecretKey) Evolve() error {
	if k == nil || len(k.data) != secretKeySize(k.depth) {
		return errors.New("kes secret key is malformed")
	}
	if k.period+1 >= maxPeriod(k.depth) {
		return fmt.Errorf(
			"kes key exhausted at period %d (max %d)",
			k.period,
			maxPeriod(k.depth)-1,
		)
	}
	if err := evolveTree(k.depth, k.period, k.data); err != nil {
		return err
	}
	k.period++
	return nil
}

// evolveTree advances the active spine. When the left subtree is
// exhausted the stored right seed is expanded into a fresh subtree key
// and then zeroed; leaf seeds that fall out of scope are zeroed for
// forward security.
func evolveTree(depth uint64, period uint64, data []byte) error {
	if depth == 0 {
		for i := range ed25519SeedSize {
			data[i] = 0
		}
		return nil
	}

	childSize := secretKeySize(depth - 1)
	half := uint64(1) << (depth - 1)
	seedOffset := childSize

	switch {
	case period < half-1:
		return evolveTree(depth-1, period, data[:childSize])
	case period == half-1:
		// Cross from the left subtree into the right
		seed := data[seedOffset : seedOffset+SeedSize]
		rightKey := make([]byte, childSize)
		if _, err := genTree(depth-1, seed, rightKey); err != nil {
			return err
		}
		copy(data[:childSize], rightKey)
		for i := range SeedSize {
			data[seedOffset+i] = 0
		}
		return nil
	default:
		return evolveTree(depth-1, period-half, data[:childSize])
	}
}
