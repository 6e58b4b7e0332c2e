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

// Package header implements the block header data model, its canonical
// wire encoding, and per-variant proof verification. A header proves
// that a block was produced by an authorized leader under one of two
// consensus protocols: BFT (a plain Ed25519 leader signature) or
// Genesis-Praos (a VRF slot-leadership proof combined with a
// key-evolving signature).
package header

import (
	"fmt"

	"github.com/blinklabs-io/gjormungandr/key"
)

// BlockDate locates a block in time as an (epoch, slot) pair
type BlockDate struct {
	Epoch  uint32
	SlotID uint32
}

func (d BlockDate) String() string {
	return fmt.Sprintf("%d.%d", d.Epoch, d.SlotID)
}

// ChainLength is a block's depth: its distance from the genesis block.
// A child's chain length is its parent's plus exactly one; enforcing
// the parent/child relationship is the chain-selection layer's job,
// this package only supplies the increment.
type ChainLength uint32

// Next returns the chain length of a child block. It wraps to zero at
// the 32-bit maximum; a chain long enough to reach it is beyond the
// lifetime this format supports, and chain selection rejects
// non-incrementing lengths anyway.
func (c ChainLength) Next() ChainLength {
	return c + 1
}

// Common is the signed portion of a header: the block metadata every
// proof variant covers. It is immutable once built; signatures and the
// header hash are computed over its canonical serialization.
type Common struct {
	Version          BlockVersion
	BlockDate        BlockDate
	BlockContentSize uint32
	BlockContentHash key.Hash
	BlockParentHash  key.Hash
	ChainLength      ChainLength
}

// Header is a block header: common metadata plus the consensus proof
// matching the version tag. Its identity is the Blake2b-256 hash of its
// canonical serialization.
type Header struct {
	Common Common
	Proof  Proof
}

// NewHeader builds a header, rejecting any version/proof pairing other
// than Genesis+none, Ed25519Signed+BFT, KesVrfproof+GenesisPraos.
func NewHeader(common Common, proof Proof) (*Header, error) {
	if !common.Version.Supported() {
		return nil, UnsupportedVersionError{Version: uint16(common.Version)}
	}
	if proof == nil {
		proof = NoProof{}
	}
	if proof.version() != common.Version {
		return nil, ProofMismatchError{
			Version:      common.Version,
			ProofVersion: proof.version(),
		}
	}
	return &Header{Common: common, Proof: proof}, nil
}

// Hash computes the header's identity: the Blake2b-256 hash of the
// canonical header bytes (without the outer length prefix)
func (h *Header) Hash() key.Hash {
	raw, err := key.SerializeToBytes(h)
	if err != nil {
		// Serialization of a well-formed header cannot fail; a
		// mismatched proof variant is a construction bug
		panic(fmt.Sprintf("unexpected error serializing header: %s", err))
	}
	return key.HashBytes(raw)
}

// Id is the header identity consumed by chain selection; it is the
// header hash
func (h *Header) Id() key.Hash {
	return h.Hash()
}

// ParentId returns the identity of the parent block's header
func (h *Header) ParentId() key.Hash {
	return h.Common.BlockParentHash
}

func (h *Header) Version() BlockVersion {
	return h.Common.Version
}

func (h *Header) BlockDate() BlockDate {
	return h.Common.BlockDate
}

func (h *Header) BlockContentSize() uint32 {
	return h.Common.BlockContentSize
}

// BlockContentHash returns the declared hash of the block body this
// header accompanies. Checking it against the actual body is the block
// assembly layer's job.
func (h *Header) BlockContentHash() key.Hash {
	return h.Common.BlockContentHash
}

func (h *Header) ChainLength() ChainLength {
	return h.Common.ChainLength
}
