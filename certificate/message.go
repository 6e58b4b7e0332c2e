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
	"fmt"
	"io"

	"github.com/blinklabs-io/gjormungandr/key"
	"github.com/blinklabs-io/gjormungandr/wire"
)

// MessageType tags a message variant on the wire
type MessageType uint8

const (
	MessageTypeStakeKeyRegistration   MessageType = 1
	MessageTypeStakeKeyDeregistration MessageType = 2
	MessageTypeStakeDelegation        MessageType = 3
	MessageTypeStakePoolRegistration  MessageType = 4
	MessageTypeStakePoolRetirement    MessageType = 5
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeStakeKeyRegistration:
		return "StakeKeyRegistration"
	case MessageTypeStakeKeyDeregistration:
		return "StakeKeyDeregistration"
	case MessageTypeStakeDelegation:
		return "StakeDelegation"
	case MessageTypeStakePoolRegistration:
		return "StakePoolRegistration"
	case MessageTypeStakePoolRetirement:
		return "StakePoolRetirement"
	}
	return fmt.Sprintf("Unknown(%d)", uint8(t))
}

// UnknownMessageTypeError indicates a message whose kind tag does not
// map to any certificate kind
type UnknownMessageTypeError struct {
	Type uint8
}

func (e UnknownMessageTypeError) Error() string {
	return fmt.Sprintf("unknown message type: %d", e.Type)
}

// Message is a signed certificate wrapped for inclusion in a block
// body: one message variant per certificate kind. It is the unit the
// block-body assembler consumes; this package's obligation ends at
// producing it.
type Message struct {
	Cert Signed[Certificate]
}

// Type returns the message's kind tag, derived from the wrapped
// certificate
func (m Message) Type() MessageType {
	return m.Cert.Data.Kind()
}

// Serialize writes the kind tag followed by the signed envelope
func (m Message) Serialize(w io.Writer) error {
	if m.Cert.Data == nil {
		return fmt.Errorf("message has no certificate")
	}
	if _, err := w.Write([]byte{byte(m.Type())}); err != nil {
		return err
	}
	return m.Cert.Serialize(w)
}

// DecodeMessage reads one message, dispatching the payload decoder on
// the kind tag
func DecodeMessage(r *wire.Reader) (Message, error) {
	tagBytes, err := r.GetBytes(1)
	if err != nil {
		return Message{}, err
	}
	decodeCert, err := certificateDecoder(MessageType(tagBytes[0]))
	if err != nil {
		return Message{}, err
	}
	signed, err := DecodeSigned(r, decodeCert)
	if err != nil {
		return Message{}, err
	}
	return Message{Cert: signed}, nil
}

// DecodeMessageBytes decodes a message from a byte slice that must
// contain exactly one message
func DecodeMessageBytes(data []byte) (Message, error) {
	r := wire.NewReader(data)
	m, err := DecodeMessage(r)
	if err != nil {
		return Message{}, err
	}
	if err := r.Close(); err != nil {
		return Message{}, err
	}
	return m, nil
}

// certificateDecoder maps a kind tag to the payload decoder for that
// certificate kind
func certificateDecoder(
	t MessageType,
) (func(*wire.Reader) (Certificate, error), error) {
	switch t {
	case MessageTypeStakeKeyRegistration:
		return asCertificate(DecodeStakeKeyRegistration), nil
	case MessageTypeStakeKeyDeregistration:
		return asCertificate(DecodeStakeKeyDeregistration), nil
	case MessageTypeStakeDelegation:
		return asCertificate(DecodeStakeDelegation), nil
	case MessageTypeStakePoolRegistration:
		return asCertificate(DecodeStakePoolRegistration), nil
	case MessageTypeStakePoolRetirement:
		return asCertificate(DecodeStakePoolRetirement), nil
	}
	return nil, UnknownMessageTypeError{Type: uint8(t)}
}

// asCertificate lifts a concrete payload decoder to the Certificate
// union
func asCertificate[T Certificate](
	decode func(*wire.Reader) (T, error),
) func(*wire.Reader) (Certificate, error) {
	return func(r *wire.Reader) (Certificate, error) {
		return decode(r)
	}
}

// signAndWrap is the shared certificate construction path: sign the
// canonical payload bytes, then wrap the envelope in its message
// variant
func signAndWrap(priv key.PrivateKey, cert Certificate) (Message, error) {
	signed, err := Sign(priv, cert)
	if err != nil {
		return Message{}, err
	}
	return Message{Cert: signed}, nil
}
