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

package header_test

import (
	"bytes"
	"io"
	"math"
	"math/rand"
	"testing"

	"github.com/blinklabs-io/gjormungandr/header"
	"github.com/blinklabs-io/gjormungandr/internal/test"
	"github.com/blinklabs-io/gjormungandr/kes"
	"github.com/blinklabs-io/gjormungandr/key"
	"github.com/blinklabs-io/gjormungandr/vrf"
	"github.com/blinklabs-io/gjormungandr/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for _, version := range []header.BlockVersion{
		header.BlockVersionGenesis,
		header.BlockVersionEd25519Signed,
		header.BlockVersionKesVrfproof,
	} {
		h := test.RandomHeaderWithVersion(r, version)
		data, err := key.SerializeToBytes(h)
		require.NoError(t, err, "Serialize failed for version %d", version)
		decoded, err := header.DecodeHeaderBytes(data)
		require.NoError(t, err, "Decode failed for version %d", version)
		assert.Equal(t, h, decoded, "round trip mismatch for version %d", version)
	}
}

func TestHeaderSerializedSize(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	testDefs := []struct {
		version header.BlockVersion
		size    int
	}{
		{header.BlockVersionGenesis, header.CommonSize},
		{header.BlockVersionEd25519Signed, header.CommonSize + 32 + 64},
		{
			header.BlockVersionKesVrfproof,
			header.CommonSize + header.PraosIDSize + vrf.ProofSize + kes.SignatureSize,
		},
	}
	for _, testDef := range testDefs {
		h := test.RandomHeaderWithVersion(r, testDef.version)
		data, err := key.SerializeToBytes(h)
		require.NoError(t, err, "Serialize failed")
		assert.Len(t, data, testDef.size, "wrong size for version %d", testDef.version)
	}
}

func TestCommonCanonicalLayout(t *testing.T) {
	common := header.Common{
		Version:          header.BlockVersionEd25519Signed,
		BlockDate:        header.BlockDate{Epoch: 0x05060708, SlotID: 0x090a0b0c},
		BlockContentSize: 0x01020304,
		BlockContentHash: key.NewHash(test.DecodeHexString(
			"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		)),
		BlockParentHash: key.NewHash(test.DecodeHexString(
			"bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		)),
		ChainLength: 0x0d0e0f10,
	}
	data, err := key.SerializeToBytes(&common)
	require.NoError(t, err, "Serialize failed")
	require.Len(t, data, header.CommonSize)

	// version, content size, epoch, slot, chain length, then the hashes
	expected := test.DecodeHexString(
		"0001" +
			"01020304" +
			"05060708" +
			"090a0b0c" +
			"0d0e0f10" +
			"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa" +
			"bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
	)
	assert.Equal(t, expected, data)

	decoded, err := header.DecodeCommon(wire.NewReader(data))
	require.NoError(t, err, "DecodeCommon failed")
	assert.Equal(t, common, decoded)
}

func TestDecodeUnsupportedVersion(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	common := test.RandomCommon(r, header.BlockVersion(99))
	data, err := key.SerializeToBytes(&common)
	require.NoError(t, err, "Serialize failed")

	_, err = header.DecodeHeaderBytes(data)
	require.Error(t, err)
	assert.ErrorIs(t, err, header.ErrUnsupportedVersion)
	var versionErr header.UnsupportedVersionError
	require.ErrorAs(t, err, &versionErr)
	assert.Equal(t, uint16(99), versionErr.Version, "error should carry the raw tag")
}

func TestDecodeTruncated(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	h := test.RandomHeaderWithVersion(r, header.BlockVersionEd25519Signed)
	data, err := key.SerializeToBytes(h)
	require.NoError(t, err, "Serialize failed")

	for _, cut := range []int{0, 1, header.CommonSize - 1, header.CommonSize, len(data) - 1} {
		_, err := header.DecodeHeaderBytes(data[:cut])
		require.Error(t, err, "truncation at %d should fail", cut)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF, "truncation at %d", cut)
	}
}

func TestDecodeTrailingData(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	h := test.RandomHeaderWithVersion(r, header.BlockVersionGenesis)
	data, err := key.SerializeToBytes(h)
	require.NoError(t, err, "Serialize failed")

	_, err = header.DecodeHeaderBytes(append(data, 0x00))
	require.Error(t, err)
	var trailingErr wire.TrailingDataError
	require.ErrorAs(t, err, &trailingErr)
	assert.Equal(t, 1, trailingErr.Remaining)
}

// A version tag that disagrees with the trailer it precedes surfaces as
// a structural decode failure: extra bytes when the claimed trailer is
// shorter than the actual one, a short read when it is longer.
func TestDecodeTagTrailerMismatch(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	// BFT trailer preceded by a genesis tag: 96 unconsumed bytes
	bft := test.RandomHeaderWithVersion(r, header.BlockVersionEd25519Signed)
	data, err := key.SerializeToBytes(bft)
	require.NoError(t, err, "Serialize failed")
	data[0] = 0x00
	data[1] = 0x00
	_, err = header.DecodeHeaderBytes(data)
	require.Error(t, err)
	var trailingErr wire.TrailingDataError
	require.ErrorAs(t, err, &trailingErr)
	assert.Equal(t, 96, trailingErr.Remaining)

	// Empty genesis trailer preceded by a praos tag: short read
	genesis := test.RandomHeaderWithVersion(r, header.BlockVersionGenesis)
	data, err = key.SerializeToBytes(genesis)
	require.NoError(t, err, "Serialize failed")
	data[0] = 0x00
	data[1] = 0x02
	_, err = header.DecodeHeaderBytes(data)
	require.Error(t, err)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestNewHeaderProofMismatch(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	common := test.RandomCommon(r, header.BlockVersionEd25519Signed)
	_, err := header.NewHeader(common, header.NoProof{})
	require.Error(t, err)
	var mismatchErr header.ProofMismatchError
	require.ErrorAs(t, err, &mismatchErr)
	assert.Equal(t, header.BlockVersionEd25519Signed, mismatchErr.Version)
	assert.Equal(t, header.BlockVersionGenesis, mismatchErr.ProofVersion)
}

func TestNewHeaderNilProof(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	common := test.RandomCommon(r, header.BlockVersionGenesis)
	h, err := header.NewHeader(common, nil)
	require.NoError(t, err, "NewHeader failed")
	assert.Equal(t, header.NoProof{}, h.Proof, "nil proof should normalize to NoProof")
}

func TestSerializeProofMismatch(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	h := test.RandomHeaderWithVersion(r, header.BlockVersionEd25519Signed)
	h.Common.Version = header.BlockVersionGenesis
	var buf bytes.Buffer
	err := h.Serialize(&buf)
	require.Error(t, err)
	var mismatchErr header.ProofMismatchError
	require.ErrorAs(t, err, &mismatchErr)
}

func TestHeaderIdentity(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	h := test.RandomHeader(r)

	data, err := key.SerializeToBytes(h)
	require.NoError(t, err, "Serialize failed")
	assert.Equal(t, key.HashBytes(data), h.Hash(), "hash should cover the canonical bytes")
	assert.Equal(t, h.Hash(), h.Id())
	assert.Equal(t, h.Common.BlockParentHash, h.ParentId())

	// Identity is stable across repeated calls and distinct across headers
	assert.Equal(t, h.Hash(), h.Hash())
	other := test.RandomHeader(r)
	assert.NotEqual(t, h.Hash(), other.Hash())
}

func TestHeaderAccessors(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	h := test.RandomHeader(r)
	assert.Equal(t, h.Common.Version, h.Version())
	assert.Equal(t, h.Common.BlockDate, h.BlockDate())
	assert.Equal(t, h.Common.BlockContentSize, h.BlockContentSize())
	assert.Equal(t, h.Common.BlockContentHash, h.BlockContentHash())
	assert.Equal(t, h.Common.ChainLength, h.ChainLength())
}

func TestRawFraming(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	h := test.RandomHeaderWithVersion(r, header.BlockVersionKesVrfproof)
	raw, err := h.ToRaw()
	require.NoError(t, err, "ToRaw failed")

	var buf bytes.Buffer
	require.NoError(t, raw.Serialize(&buf), "framing failed")
	assert.Len(t, buf.Bytes(), len(raw)+2, "framing adds a 2-byte prefix")

	decoded, err := header.DecodeRaw(&buf)
	require.NoError(t, err, "DecodeRaw failed")
	assert.Equal(t, raw, decoded)

	parsed, err := decoded.Decode()
	require.NoError(t, err, "Decode failed")
	assert.Equal(t, h, parsed)

	// The length prefix is not part of the header identity
	assert.Equal(t, h.Hash(), raw.Hash())
}

func TestDecodeFramedHeader(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	h := test.RandomHeader(r)
	raw, err := h.ToRaw()
	require.NoError(t, err, "ToRaw failed")
	var buf bytes.Buffer
	require.NoError(t, raw.Serialize(&buf), "framing failed")

	parsed, err := header.DecodeFramedHeader(&buf)
	require.NoError(t, err, "DecodeFramedHeader failed")
	assert.Equal(t, h, parsed)
}

func TestDecodeRawShortStream(t *testing.T) {
	// Prefix claims 100 bytes but the stream holds 10
	data := append([]byte{0x00, 0x64}, make([]byte, 10)...)
	_, err := header.DecodeRaw(bytes.NewReader(data))
	require.Error(t, err)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestChainLengthNext(t *testing.T) {
	assert.Equal(t, header.ChainLength(1), header.ChainLength(0).Next())
	assert.Equal(t, header.ChainLength(43), header.ChainLength(42).Next())
	assert.Equal(
		t,
		header.ChainLength(0),
		header.ChainLength(math.MaxUint32).Next(),
	)
}

func TestBlockDateString(t *testing.T) {
	date := header.BlockDate{Epoch: 3, SlotID: 17}
	assert.Equal(t, "3.17", date.String())
}

func TestBlockVersionString(t *testing.T) {
	assert.Equal(t, "Genesis", header.BlockVersionGenesis.String())
	assert.Equal(t, "Ed25519Signed", header.BlockVersionEd25519Signed.String())
	assert.Equal(t, "KesVrfproof", header.BlockVersionKesVrfproof.String())
	assert.Equal(t, "Unsupported(99)", header.BlockVersion(99).String())
}
