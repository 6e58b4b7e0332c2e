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
	"fmt"

	"github.com/blinklabs-io/gjormungandr/kes"
	"github.com/blinklabs-io/gjormungandr/key"
	"github.com/blinklabs-io/gjormungandr/vrf"
)

// SlotsPerKESPeriod is the number of slots covered by one KES evolution
// period. The period implied by a slot is slot / SlotsPerKESPeriod; a
// slot beyond the last period fails KES verification as an exhausted
// key.
const SlotsPerKESPeriod = 129600

// PraosLeader is the public key material a Genesis-Praos leader is
// registered with
type PraosLeader struct {
	VrfPublicKey []byte
	KesPublicKey []byte
}

// KeyRegistry resolves praos leader identifiers to their registered key
// pairs. It is owned and populated by the leadership-schedule layer;
// this package only defines the lookup contract. A nil result means the
// identifier is unknown, which is a verification failure rather than a
// structural error.
type KeyRegistry interface {
	LookupPraosLeader(id PraosID) *PraosLeader
}

// KesPeriod returns the KES evolution period implied by a slot
func KesPeriod(slot uint32) uint64 {
	return uint64(slot) / SlotsPerKESPeriod
}

// VerifyProof checks the header's proof against its common metadata. It
// is a pure read: no state is touched and repeated calls return
// identical results. A nil return means the proof is valid; a non-nil
// return carries the failure reason, distinguishable with errors.Is
// against key.ErrInvalidSignature, vrf.ErrVerificationFailed,
// kes.ErrVerificationFailed, and ErrUnknownLeader.
//
// A NoProof header always verifies; callers must independently enforce
// that it only ever occurs at the genesis position.
func (h *Header) VerifyProof(registry KeyRegistry) error {
	switch proof := h.Proof.(type) {
	case nil, NoProof:
		return nil
	case BftProof:
		msg, err := key.SerializeToBytes(&h.Common)
		if err != nil {
			return err
		}
		scheme := key.Ed25519Scheme{}
		if err := scheme.VerifySignature(
			proof.LeaderID.Bytes(),
			msg,
			proof.Signature.Bytes(),
		); err != nil {
			return fmt.Errorf("bft proof: %w", err)
		}
		return nil
	case GenesisPraosProof:
		return h.verifyGenesisPraos(proof, registry)
	}
	return fmt.Errorf("unknown proof variant %T", h.Proof)
}

// verifyGenesisPraos evaluates the three Genesis-Praos checks: leader
// resolution, VRF proof, KES signature. All three must pass; the first
// failure is returned as the reason.
func (h *Header) verifyGenesisPraos(
	proof GenesisPraosProof,
	registry KeyRegistry,
) error {
	if registry == nil {
		return fmt.Errorf("%w: no key registry", ErrUnknownLeader)
	}
	leader := registry.LookupPraosLeader(proof.PraosID)
	if leader == nil {
		return fmt.Errorf("%w: %s", ErrUnknownLeader, proof.PraosID)
	}

	msg, err := key.SerializeToBytes(&h.Common)
	if err != nil {
		return err
	}

	if _, err := vrf.Verify(
		leader.VrfPublicKey,
		proof.VrfProof.Bytes(),
		praosInput(h.Common, msg),
	); err != nil {
		return fmt.Errorf("genesis praos proof: %w", err)
	}

	kesScheme := kes.Scheme{Period: KesPeriod(h.Common.BlockDate.SlotID)}
	if err := kesScheme.VerifySignature(
		leader.KesPublicKey,
		msg,
		proof.KesSignature.Bytes(),
	); err != nil {
		return fmt.Errorf("genesis praos proof: %w", err)
	}
	return nil
}
