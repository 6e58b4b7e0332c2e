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
	"encoding/binary"
	"fmt"
	"io"

	"github.com/blinklabs-io/gjormungandr/key"
)

// MaxRawSize is the largest header the outer framing can carry
const MaxRawSize = 0xffff

// Raw is the canonical byte sequence of a single header, before or
// without full parsing. A transport can frame, slice, and forward Raw
// values without knowing the trailer shape.
type Raw []byte

// ToRaw renders the header's canonical bytes
func (h *Header) ToRaw() (Raw, error) {
	raw, err := key.SerializeToBytes(h)
	if err != nil {
		return nil, err
	}
	return Raw(raw), nil
}

// Decode parses the raw bytes into a header
func (r Raw) Decode() (*Header, error) {
	return DecodeHeaderBytes(r)
}

// Hash computes the header identity directly from the raw bytes
func (r Raw) Hash() key.Hash {
	return key.HashBytes(r)
}

// Serialize writes the outer framing: a big-endian u16 length prefix
// followed by the header bytes. The prefix is not part of the header's
// canonical bytes and is excluded from the hash.
func (r Raw) Serialize(w io.Writer) error {
	if len(r) > MaxRawSize {
		return fmt.Errorf(
			"header too large for framing: %d bytes (max %d)",
			len(r),
			MaxRawSize,
		)
	}
	var prefix [2]byte
	binary.BigEndian.PutUint16(prefix[:], uint16(len(r)))
	if _, err := w.Write(prefix[:]); err != nil {
		return err
	}
	_, err := w.Write(r)
	return err
}

// DecodeRaw reads one length-prefixed header byte sequence from a
// stream without parsing it. Short reads propagate as the underlying
// reader's I/O errors (io.ReadFull semantics).
func DecodeRaw(r io.Reader) (Raw, error) {
	var prefix [2]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, err
	}
	size := binary.BigEndian.Uint16(prefix[:])
	raw := make(Raw, size)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// DecodeFramedHeader reads one framed header from a stream and parses
// it
func DecodeFramedHeader(r io.Reader) (*Header, error) {
	raw, err := DecodeRaw(r)
	if err != nil {
		return nil, err
	}
	return raw.Decode()
}
