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

package header

import (
	"encoding/hex"
	"fmt"

	"github.com/blinklabs-io/gjormungandr/kes"
	"github.com/blinklabs-io/gjormungandr/key"
	"github.com/blinklabs-io/gjormungandr/vrf"
	"github.com/blinklabs-io/gjormungandr/wire"
)

// Proof is the consensus proof carried in a header trailer. It is a
// closed union: NoProof, BftProof, or GenesisPraosProof, each paired
// with exactly one block version tag. All variants are comparable value
// types; equality of signature-bearing variants is byte equality of the
// signatures, never re-verification.
type Proof interface {
	// version returns the block version tag this proof variant is
	// paired with, sealing the union to this package
	version() BlockVersion
}

// NoProof is the absence of a consensus proof, legal only for the
// designated genesis block. Callers enforce the genesis-only rule;
// verification of a NoProof header always succeeds here.
type NoProof struct{}

func (NoProof) version() BlockVersion {
	return BlockVersionGenesis
}

// BftProof authenticates a header through a single Ed25519 signature by
// a designated leader. The leader's public key travels in the proof;
// whether that leader was scheduled for the slot is decided elsewhere.
type BftProof struct {
	LeaderID  key.PublicKey
	Signature key.Signature
}

func (BftProof) version() BlockVersion {
	return BlockVersionEd25519Signed
}

// NewBftProof signs the canonical bytes of common with the leader's
// private key
func NewBftProof(leaderKey key.PrivateKey, common Common) (BftProof, error) {
	sig, err := leaderKey.SignSerializable(&common)
	if err != nil {
		return BftProof{}, err
	}
	return BftProof{
		LeaderID:  leaderKey.Public(),
		Signature: sig,
	}, nil
}

// PraosIDSize is the size of a Genesis-Praos leader identifier
const PraosIDSize = 32

// PraosID is the opaque identifier of a Genesis-Praos leader. It is
// resolved to a (VRF, KES) public key pair through the key registry;
// this package assigns it no other structure.
type PraosID [PraosIDSize]byte

func NewPraosID(data []byte) PraosID {
	p := PraosID{}
	copy(p[:], data)
	return p
}

func (p PraosID) String() string {
	return hex.EncodeToString(p[:])
}

func (p PraosID) Bytes() []byte {
	return p[:]
}

// VrfProof is the fixed-width VRF proof embedded in a Genesis-Praos
// trailer
type VrfProof [vrf.ProofSize]byte

func (p VrfProof) Bytes() []byte {
	return p[:]
}

// KesSignature is the fixed-width key-evolving signature embedded in a
// Genesis-Praos trailer
type KesSignature [kes.SignatureSize]byte

func (s KesSignature) Bytes() []byte {
	return s[:]
}

// GenesisPraosProof authenticates a header through a VRF proof of slot
// leadership and a forward-secure KES signature, both produced by the
// leader identified by PraosID.
type GenesisPraosProof struct {
	PraosID      PraosID
	VrfProof     VrfProof
	KesSignature KesSignature
}

func (GenesisPraosProof) version() BlockVersion {
	return BlockVersionKesVrfproof
}

// NewGenesisPraosProof builds a Genesis-Praos proof over the canonical
// bytes of common: a VRF proof for the slot input backed by vrfSecret,
// and a KES signature at the key's current evolution period backed by
// kesKey. The KES key must be positioned at the period implied by the
// slot (slot / SlotsPerKESPeriod).
func NewGenesisPraosProof(
	praosID PraosID,
	vrfSecret []byte,
	kesKey *kes.SecretKey,
	common Common,
) (GenesisPraosProof, error) {
	msg, err := key.SerializeToBytes(&common)
	if err != nil {
		return GenesisPraosProof{}, err
	}

	vrfProofBytes, _, err := vrf.Prove(vrfSecret, praosInput(common, msg))
	if err != nil {
		return GenesisPraosProof{}, fmt.Errorf("vrf prove: %w", err)
	}
	kesSigBytes, err := kesKey.Sign(msg)
	if err != nil {
		return GenesisPraosProof{}, fmt.Errorf("kes sign: %w", err)
	}

	proof := GenesisPraosProof{PraosID: praosID}
	copy(proof.VrfProof[:], vrfProofBytes)
	copy(proof.KesSignature[:], kesSigBytes)
	return proof, nil
}

// praosInput builds the VRF input binding the slot to the header
// contents: the slot number combined with the hash of the canonical
// Common bytes as entropy.
func praosInput(common Common, commonBytes []byte) []byte {
	entropy := key.HashBytes(commonBytes)
	return vrf.SlotInput(uint64(common.BlockDate.SlotID), entropy.Bytes())
}

// decodeProof reads the proof trailer matching the given version tag.
// The trailer has no length prefix of its own: the tag alone determines
// its shape, so a wrong tag cannot be recovered from.
func decodeProof(r *wire.Reader, version BlockVersion) (Proof, error) {
	switch version {
	case BlockVersionGenesis:
		return NoProof{}, nil
	case BlockVersionEd25519Signed:
		leaderID, err := key.DecodePublicKey(r)
		if err != nil {
			return nil, err
		}
		sig, err := key.DecodeSignature(r)
		if err != nil {
			return nil, err
		}
		return BftProof{LeaderID: leaderID, Signature: sig}, nil
	case BlockVersionKesVrfproof:
		proof := GenesisPraosProof{}
		idBytes, err := r.GetBytes(PraosIDSize)
		if err != nil {
			return nil, err
		}
		copy(proof.PraosID[:], idBytes)
		vrfBytes, err := r.GetBytes(vrf.ProofSize)
		if err != nil {
			return nil, err
		}
		if err := vrf.CheckProof(vrfBytes); err != nil {
			return nil, err
		}
		copy(proof.VrfProof[:], vrfBytes)
		kesBytes, err := r.GetBytes(kes.SignatureSize)
		if err != nil {
			return nil, err
		}
		copy(proof.KesSignature[:], kesBytes)
		return proof, nil
	}
	return nil, UnsupportedVersionError{Version: uint16(version)}
}

// serializeProof writes the proof trailer for the given variant
func serializeProof(w *wire.Writer, proof Proof) error {
	switch p := proof.(type) {
	case NoProof:
		return nil
	case BftProof:
		if err := w.PutBytes(p.LeaderID.Bytes()); err != nil {
			return err
		}
		return w.PutBytes(p.Signature.Bytes())
	case GenesisPraosProof:
		if err := w.PutBytes(p.PraosID.Bytes()); err != nil {
			return err
		}
		if err := w.PutBytes(p.VrfProof.Bytes()); err != nil {
			return err
		}
		return w.PutBytes(p.KesSignature.Bytes())
	}
	return fmt.Errorf("unknown proof variant %T", proof)
}
