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
	"io"

	"github.com/blinklabs-io/gjormungandr/key"
	"github.com/blinklabs-io/gjormungandr/wire"
)

// CommonSize is the canonical encoded size of Common:
// u16 version + u32 content size + u32 epoch + u32 slot +
// u32 chain length + 32-byte content hash + 32-byte parent hash
const CommonSize = 2 + 4 + 4 + 4 + 4 + 32 + 32

// Serialize writes the canonical encoding of the common metadata. These
// are the exact bytes every proof signature covers.
func (c *Common) Serialize(w io.Writer) error {
	ww := wire.NewWriter(w)
	if err := ww.PutUint16(uint16(c.Version)); err != nil {
		return err
	}
	if err := ww.PutUint32(c.BlockContentSize); err != nil {
		return err
	}
	if err := ww.PutUint32(c.BlockDate.Epoch); err != nil {
		return err
	}
	if err := ww.PutUint32(c.BlockDate.SlotID); err != nil {
		return err
	}
	if err := ww.PutUint32(uint32(c.ChainLength)); err != nil {
		return err
	}
	if err := c.BlockContentHash.Serialize(w); err != nil {
		return err
	}
	return c.BlockParentHash.Serialize(w)
}

// DecodeCommon reads the common metadata. The version tag is decoded
// as-is; an unsupported tag is only rejected once the proof trailer
// must be interpreted.
func DecodeCommon(r *wire.Reader) (Common, error) {
	var common Common
	version, err := r.GetUint16()
	if err != nil {
		return common, err
	}
	common.Version = BlockVersion(version)
	if common.BlockContentSize, err = r.GetUint32(); err != nil {
		return common, err
	}
	if common.BlockDate.Epoch, err = r.GetUint32(); err != nil {
		return common, err
	}
	if common.BlockDate.SlotID, err = r.GetUint32(); err != nil {
		return common, err
	}
	chainLength, err := r.GetUint32()
	if err != nil {
		return common, err
	}
	common.ChainLength = ChainLength(chainLength)
	if common.BlockContentHash, err = key.DecodeHash(r); err != nil {
		return common, err
	}
	if common.BlockParentHash, err = key.DecodeHash(r); err != nil {
		return common, err
	}
	return common, nil
}

// Serialize writes the canonical header encoding: the common metadata
// followed by the proof trailer matching the version tag
func (h *Header) Serialize(w io.Writer) error {
	proof := h.Proof
	if proof == nil {
		proof = NoProof{}
	}
	if proof.version() != h.Common.Version {
		return ProofMismatchError{
			Version:      h.Common.Version,
			ProofVersion: proof.version(),
		}
	}
	if err := h.Common.Serialize(w); err != nil {
		return err
	}
	return serializeProof(wire.NewWriter(w), proof)
}

// DecodeHeader reads a header from the reader. The version tag decoded
// with the common metadata determines the proof trailer's shape; an
// unsupported tag fails with UnsupportedVersionError carrying the raw
// value.
func DecodeHeader(r *wire.Reader) (*Header, error) {
	common, err := DecodeCommon(r)
	if err != nil {
		return nil, err
	}
	if !common.Version.Supported() {
		return nil, UnsupportedVersionError{Version: uint16(common.Version)}
	}
	proof, err := decodeProof(r, common.Version)
	if err != nil {
		return nil, err
	}
	return &Header{Common: common, Proof: proof}, nil
}

// DecodeHeaderBytes decodes a header from a byte slice that must
// contain exactly one header
func DecodeHeaderBytes(data []byte) (*Header, error) {
	r := wire.NewReader(data)
	h, err := DecodeHeader(r)
	if err != nil {
		return nil, err
	}
	if err := r.Close(); err != nil {
		return nil, err
	}
	return h, nil
}
