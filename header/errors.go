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
	"errors"
	"fmt"
)

// UnsupportedVersionError indicates a header whose version tag does not
// map to any known proof variant. The raw tag value is carried for
// diagnostics.
type UnsupportedVersionError struct {
	Version uint16
}

func (e UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported block version: %d", e.Version)
}

// Sentinel for unsupported version tags so callers can use errors.Is
var ErrUnsupportedVersion = errors.New("unsupported block version")

func (UnsupportedVersionError) Is(target error) bool {
	return target == ErrUnsupportedVersion
}

// ProofMismatchError indicates a header whose proof variant does not
// match its version tag. The pairing is structural: it can only arise
// from a misconstructed header, never from decoding, since decoding
// derives the variant from the tag.
type ProofMismatchError struct {
	Version      BlockVersion
	ProofVersion BlockVersion
}

func (e ProofMismatchError) Error() string {
	return fmt.Sprintf(
		"block version %s cannot carry a %s proof",
		e.Version,
		e.ProofVersion,
	)
}

// ErrUnknownLeader is the verification failure for a Genesis-Praos
// proof whose praos id does not resolve to a registered leader. It is a
// verification outcome, not a structural error: the header is well
// formed but cannot be authenticated.
var ErrUnknownLeader = errors.New("unknown genesis praos leader id")
