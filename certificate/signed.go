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

package certificate

import (
	"io"

	"github.com/blinklabs-io/gjormungandr/key"
	"github.com/blinklabs-io/gjormungandr/wire"
)

// Signed pairs a payload with a detached signature over the payload's
// canonical bytes. The signature covers exactly those bytes, not any
// enclosing wrapper, so the envelope can be re-framed without
// invalidating it.
type Signed[T key.Serializable] struct {
	Data T
	Sig  key.Signature
}

// Sign produces a signed envelope for the payload. Determinism is
// whatever the underlying signature scheme provides; nothing further is
// imposed here.
func Sign[T key.Serializable](
	priv key.PrivateKey,
	data T,
) (Signed[T], error) {
	sig, err := priv.SignSerializable(data)
	if err != nil {
		return Signed[T]{}, err
	}
	return Signed[T]{Data: data, Sig: sig}, nil
}

// Serialize writes the payload's canonical bytes followed by the
// signature
func (s Signed[T]) Serialize(w io.Writer) error {
	if err := s.Data.Serialize(w); err != nil {
		return err
	}
	return s.Sig.Serialize(w)
}

// Verify checks the envelope's signature against the given public key
func (s Signed[T]) Verify(pub key.PublicKey) error {
	raw, err := key.SerializeToBytes(s.Data)
	if err != nil {
		return err
	}
	scheme := key.Ed25519Scheme{}
	return scheme.VerifySignature(pub.Bytes(), raw, s.Sig.Bytes())
}

// DecodeSigned reads a signed envelope, decoding the payload with the
// provided decoder
func DecodeSigned[T key.Serializable](
	r *wire.Reader,
	decodeData func(*wire.Reader) (T, error),
) (Signed[T], error) {
	data, err := decodeData(r)
	if err != nil {
		return Signed[T]{}, err
	}
	sig, err := key.DecodeSignature(r)
	if err != nil {
		return Signed[T]{}, err
	}
	return Signed[T]{Data: data, Sig: sig}, nil
}
