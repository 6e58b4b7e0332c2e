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

package key

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/blake2b"

	"github.com/blinklabs-io/gjormungandr/wire"
)

// HashSize is the size of a Blake2b-256 hash
const HashSize = 32

// Hash is a Blake2b-256 digest. It is the identity type for headers,
// blocks, and block content.
type Hash [HashSize]byte

func NewHash(data []byte) Hash {
	h := Hash{}
	copy(h[:], data)
	return h
}

// HashBytes computes the Blake2b-256 hash of the provided data
func HashBytes(data []byte) Hash {
	tmpHash, err := blake2b.New(HashSize, nil)
	if err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error generating empty blake2b hash: %s",
				err,
			),
		)
	}
	tmpHash.Write(data)
	return Hash(tmpHash.Sum(nil))
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) Bytes() []byte {
	return h[:]
}

func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h Hash) Bech32(prefix string) string {
	// Convert data to base32 and encode as bech32
	convData, err := bech32.ConvertBits(h[:], 8, 5, true)
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

func (h Hash) Serialize(w io.Writer) error {
	_, err := w.Write(h[:])
	return err
}

func DecodeHash(r *wire.Reader) (Hash, error) {
	b, err := r.GetBytes(HashSize)
	if err != nil {
		return Hash{}, err
	}
	return NewHash(b), nil
}
