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

// Package certificate implements the stake state-transition
// certificates: canonical payload serialization, detached signing into
// a Signed envelope, and wrapping into the outbound message type the
// block-body assembler consumes.
//
// Signing here only guarantees the construction is canonical; whether
// the signer is entitled to act on the given stake key or pool is
// ledger-side validation, out of scope.
package certificate

import (
	"encoding/hex"
	"io"

	"github.com/blinklabs-io/gjormungandr/key"
	"github.com/blinklabs-io/gjormungandr/wire"
)

// StakeKeyID identifies a stake key holder: the public key whose
// private counterpart authorizes certificates about that stake
type StakeKeyID key.PublicKey

func NewStakeKeyID(pub key.PublicKey) StakeKeyID {
	return StakeKeyID(pub)
}

func (id StakeKeyID) String() string {
	return hex.EncodeToString(id[:])
}

func (id StakeKeyID) Bech32(prefix string) string {
	return key.PublicKey(id).Bech32(prefix)
}

func (id StakeKeyID) Serialize(w io.Writer) error {
	return key.PublicKey(id).Serialize(w)
}

func DecodeStakeKeyID(r *wire.Reader) (StakeKeyID, error) {
	pub, err := key.DecodePublicKey(r)
	if err != nil {
		return StakeKeyID{}, err
	}
	return StakeKeyID(pub), nil
}

// StakePoolID identifies a stake pool: the pool's public key, whose
// private counterpart authorizes pool lifecycle certificates
type StakePoolID key.PublicKey

func NewStakePoolID(pub key.PublicKey) StakePoolID {
	return StakePoolID(pub)
}

func (id StakePoolID) String() string {
	return hex.EncodeToString(id[:])
}

func (id StakePoolID) Bech32(prefix string) string {
	return key.PublicKey(id).Bech32(prefix)
}

func (id StakePoolID) Serialize(w io.Writer) error {
	return key.PublicKey(id).Serialize(w)
}

func DecodeStakePoolID(r *wire.Reader) (StakePoolID, error) {
	pub, err := key.DecodePublicKey(r)
	if err != nil {
		return StakePoolID{}, err
	}
	return StakePoolID(pub), nil
}

// Certificate is a stake state-transition payload. It is a closed
// union over the five certificate kinds; each kind has exactly one
// canonical serialization and maps to exactly one message type.
type Certificate interface {
	key.Serializable
	// Kind returns the message type this certificate wraps into
	Kind() MessageType
	isCertificate()
}

// StakeKeyRegistration records the registration of a stake key
type StakeKeyRegistration struct {
	StakeKeyID StakeKeyID
}

func (StakeKeyRegistration) isCertificate() {}

func (StakeKeyRegistration) Kind() MessageType {
	return MessageTypeStakeKeyRegistration
}

func (c StakeKeyRegistration) Serialize(w io.Writer) error {
	return c.StakeKeyID.Serialize(w)
}

func DecodeStakeKeyRegistration(
	r *wire.Reader,
) (StakeKeyRegistration, error) {
	id, err := DecodeStakeKeyID(r)
	if err != nil {
		return StakeKeyRegistration{}, err
	}
	return StakeKeyRegistration{StakeKeyID: id}, nil
}

// MakeCertificate signs the payload with the stake key owner's private
// key and wraps it for inclusion in a block body
func (c StakeKeyRegistration) MakeCertificate(
	stakeKey key.PrivateKey,
) (Message, error) {
	return signAndWrap(stakeKey, c)
}

// StakeKeyDeregistration records the deregistration of a stake key
type StakeKeyDeregistration struct {
	StakeKeyID StakeKeyID
}

func (StakeKeyDeregistration) isCertificate() {}

func (StakeKeyDeregistration) Kind() MessageType {
	return MessageTypeStakeKeyDeregistration
}

func (c StakeKeyDeregistration) Serialize(w io.Writer) error {
	return c.StakeKeyID.Serialize(w)
}

func DecodeStakeKeyDeregistration(
	r *wire.Reader,
) (StakeKeyDeregistration, error) {
	id, err := DecodeStakeKeyID(r)
	if err != nil {
		return StakeKeyDeregistration{}, err
	}
	return StakeKeyDeregistration{StakeKeyID: id}, nil
}

func (c StakeKeyDeregistration) MakeCertificate(
	stakeKey key.PrivateKey,
) (Message, error) {
	return signAndWrap(stakeKey, c)
}

// StakeDelegation records the delegation of a stake key's stake to a
// pool
type StakeDelegation struct {
	StakeKeyID StakeKeyID
	PoolID     StakePoolID
}

func (StakeDelegation) isCertificate() {}

func (StakeDelegation) Kind() MessageType {
	return MessageTypeStakeDelegation
}

func (c StakeDelegation) Serialize(w io.Writer) error {
	if err := c.StakeKeyID.Serialize(w); err != nil {
		return err
	}
	return c.PoolID.Serialize(w)
}

func DecodeStakeDelegation(r *wire.Reader) (StakeDelegation, error) {
	id, err := DecodeStakeKeyID(r)
	if err != nil {
		return StakeDelegation{}, err
	}
	poolID, err := DecodeStakePoolID(r)
	if err != nil {
		return StakeDelegation{}, err
	}
	return StakeDelegation{StakeKeyID: id, PoolID: poolID}, nil
}

// MakeCertificate signs with the delegating stake key, not the pool key
func (c StakeDelegation) MakeCertificate(
	stakeKey key.PrivateKey,
) (Message, error) {
	return signAndWrap(stakeKey, c)
}

// StakePoolRegistration records the registration of a stake pool
type StakePoolRegistration struct {
	PoolID StakePoolID
}

func (StakePoolRegistration) isCertificate() {}

func (StakePoolRegistration) Kind() MessageType {
	return MessageTypeStakePoolRegistration
}

func (c StakePoolRegistration) Serialize(w io.Writer) error {
	return c.PoolID.Serialize(w)
}

func DecodeStakePoolRegistration(
	r *wire.Reader,
) (StakePoolRegistration, error) {
	poolID, err := DecodeStakePoolID(r)
	if err != nil {
		return StakePoolRegistration{}, err
	}
	return StakePoolRegistration{PoolID: poolID}, nil
}

// MakeCertificate signs with the pool's own key
func (c StakePoolRegistration) MakeCertificate(
	poolKey key.PrivateKey,
) (Message, error) {
	return signAndWrap(poolKey, c)
}

// StakePoolRetirement records the retirement of a stake pool
type StakePoolRetirement struct {
	PoolID StakePoolID
}

func (StakePoolRetirement) isCertificate() {}

func (StakePoolRetirement) Kind() MessageType {
	return MessageTypeStakePoolRetirement
}

func (c StakePoolRetirement) Serialize(w io.Writer) error {
	return c.PoolID.Serialize(w)
}

func DecodeStakePoolRetirement(
	r *wire.Reader,
) (StakePoolRetirement, error) {
	poolID, err := DecodeStakePoolID(r)
	if err != nil {
		return StakePoolRetirement{}, err
	}
	return StakePoolRetirement{PoolID: poolID}, nil
}

// MakeCertificate signs with the pool's own key
func (c StakePoolRetirement) MakeCertificate(
	poolKey key.PrivateKey,
) (Message, error) {
	return signAndWrap(poolKey, c)
}
