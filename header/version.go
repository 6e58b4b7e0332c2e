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

import "fmt"

// BlockVersion is the consensus version tag carried in the first two
// bytes of a header. It determines which proof variant the header's
// trailer is allowed to contain.
type BlockVersion uint16

const (
	// BlockVersionGenesis carries no proof; legal only for the
	// designated genesis block
	BlockVersionGenesis BlockVersion = 0

	// BlockVersionEd25519Signed carries a BFT proof: a plain Ed25519
	// leader signature
	BlockVersionEd25519Signed BlockVersion = 1

	// BlockVersionKesVrfproof carries a Genesis-Praos proof: a VRF
	// proof plus a key-evolving signature
	BlockVersionKesVrfproof BlockVersion = 2
)

// Supported reports whether the version tag maps to a known proof
// variant
func (v BlockVersion) Supported() bool {
	switch v {
	case BlockVersionGenesis,
		BlockVersionEd25519Signed,
		BlockVersionKesVrfproof:
		return true
	}
	return false
}

func (v BlockVersion) String() string {
	switch v {
	case BlockVersionGenesis:
		return "Genesis"
	case BlockVersionEd25519Signed:
		return "Ed25519Signed"
	case BlockVersionKesVrfproof:
		return "KesVrfproof"
	}
	return fmt.Sprintf("Unsupported(%d)", uint16(v))
}
