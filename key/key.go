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

// Package key provides the hash and Ed25519 key/signature value types
// shared by the header and certificate codecs, along with the
// scheme-polymorphic signature verification interface.
package key

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/blinklabs-io/gjormungandr/wire"
)

const (
	// PublicKeySize is the size of an Ed25519 public key
	PublicKeySize = ed25519.PublicKeySize

	// SignatureSize is the size of an Ed25519 signature
	SignatureSize = ed25519.SignatureSize

	// SeedSize is the size of an Ed25519 seed
	SeedSize = ed25519.SeedSize
)

// PublicKey is an Ed25519 public key. Being a fixed-size array, it
// compares with == and is usable as a map key.
type PublicKey [PublicKeySize]byte

func NewPublicKey(data []byte) PublicKey {
	p := PublicKey{}
	copy(p[:], data)
	return p
}

func (p PublicKey) String() string {
	return hex.EncodeToString(p[:])
}

func (p PublicKey) Bytes() []byte {
	return p[:]
}

func (p PublicKey) Bech32(prefix string) string {
	convData, err := bech32.ConvertBits(p[:], 8, 5, true)
	if err != nil {
		panic(
			fmt.Sprintf("unexpected error converting data to base32: %s", err),
		)
	}
	encoded, err := bech32.Encode(prefix, convData)
	if err != nil {
		panic(fmt.Sprintf("unexpected error encoding data as bech32: %s", err))
	}
	return encoded
}

func (p PublicKey) Serialize(w io.Writer) error {
	_, err := w.Write(p[:])
	return err
}

func DecodePublicKey(r *wire.Reader) (PublicKey, error) {
	b, err := r.GetBytes(PublicKeySize)
	if err != nil {
		return PublicKey{}, err
	}
	return NewPublicKey(b), nil
}

// Signature is a detached Ed25519 signature. Equality is byte equality
// of the signature itself, never re-verification.
type Signature [SignatureSize]byte

func NewSignature(data []byte) Signature {
	s := Signature{}
	copy(s[:], data)
	return s
}

func (s Signature) String() string {
	return hex.EncodeToString(s[:])
}

func (s Signature) Bytes() []byte {
	return s[:]
}

func (s Signature) Serialize(w io.Writer) error {
	_, err := w.Write(s[:])
	return err
}

func DecodeSignature(r *wire.Reader) (Signature, error) {
	b, err := r.GetBytes(SignatureSize)
	if err != nil {
		return Signature{}, err
	}
	return NewSignature(b), nil
}

// PrivateKey is an Ed25519 signing key. It supports "sign these
// canonical bytes" and nothing else; callers hold it only for the
// duration of a signing operation.
type PrivateKey struct {
	priv ed25519.PrivateKey
}

// GeneratePrivateKey creates a new random private key
func GeneratePrivateKey() (PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return PrivateKey{}, err
	}
	return PrivateKey{priv: priv}, nil
}

// NewPrivateKeyFromSeed derives a private key from a 32-byte seed
func NewPrivateKeyFromSeed(seed []byte) (PrivateKey, error) {
	if len(seed) != SeedSize {
		return PrivateKey{}, fmt.Errorf(
			"seed must be %d bytes, got %d",
			SeedSize,
			len(seed),
		)
	}
	return PrivateKey{priv: ed25519.NewKeyFromSeed(seed)}, nil
}

// Public returns the public counterpart of the key
func (k PrivateKey) Public() PublicKey {
	pub, ok := k.priv.Public().(ed25519.PublicKey)
	if !ok {
		panic("unexpected public key type from ed25519")
	}
	return NewPublicKey(pub)
}

// Sign signs the provided message bytes
func (k PrivateKey) Sign(msg []byte) Signature {
	return NewSignature(ed25519.Sign(k.priv, msg))
}

// SignSerializable canonically serializes data and signs the resulting
// bytes. The signature covers exactly the payload bytes, not any
// enclosing wrapper.
func (k PrivateKey) SignSerializable(data Serializable) (Signature, error) {
	raw, err := SerializeToBytes(data)
	if err != nil {
		return Signature{}, err
	}
	return k.Sign(raw), nil
}

// Serializable is any value with a canonical byte serialization
type Serializable interface {
	Serialize(io.Writer) error
}

// SerializeToBytes renders a value's canonical byte serialization
func SerializeToBytes(data Serializable) ([]byte, error) {
	var buf bytes.Buffer
	if err := data.Serialize(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ErrInvalidSignature is the verification failure for a signature that
// does not match its message and public key. It indicates a dishonest
// or confused peer, not a malformed byte stream.
var ErrInvalidSignature = errors.New("signature verification failed")

// SignatureScheme is a signature verification capability. Each
// consensus signature scheme (plain Ed25519, key-evolving) provides one
// implementation.
type SignatureScheme interface {
	// VerifySignature checks sig over msg against pubKey, returning nil
	// on success and an error wrapping ErrInvalidSignature on mismatch
	VerifySignature(pubKey []byte, msg []byte, sig []byte) error
}

// Ed25519Scheme verifies plain (non-evolving) Ed25519 signatures
type Ed25519Scheme struct{}

func (Ed25519Scheme) VerifySignature(pubKey, msg, sig []byte) error {
	if len(pubKey) != PublicKeySize {
		return fmt.Errorf("invalid public key size: %d", len(pubKey))
	}
	if len(sig) != SignatureSize {
		return fmt.Errorf("invalid signature size: %d", len(sig))
	}
	if !ed25519.Verify(ed25519.PublicKey(pubKey), msg, sig) {
		return ErrInvalidSignature
	}
	return nil
}
