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

package test

import (
	"fmt"
	"math/rand"

	"github.com/blinklabs-io/gjormungandr/certificate"
	"github.com/blinklabs-io/gjormungandr/header"
	"github.com/blinklabs-io/gjormungandr/kes"
	"github.com/blinklabs-io/gjormungandr/key"
	"github.com/blinklabs-io/gjormungandr/vrf"
)

// Randomized value generators for property-style tests. All generators
// take an explicit *rand.Rand so failures reproduce from the seed.

// RandomBytes fills a fresh slice of n bytes from r
func RandomBytes(r *rand.Rand, n int) []byte {
	buf := make([]byte, n)
	// rand.Rand.Read never returns an error
	_, _ = r.Read(buf)
	return buf
}

// RandomHash generates a random hash value
func RandomHash(r *rand.Rand) key.Hash {
	return key.NewHash(RandomBytes(r, key.HashSize))
}

// RandomPrivateKey derives a private key from a random seed
func RandomPrivateKey(r *rand.Rand) key.PrivateKey {
	priv, err := key.NewPrivateKeyFromSeed(RandomBytes(r, key.SeedSize))
	if err != nil {
		panic(fmt.Sprintf("unexpected error deriving private key: %s", err))
	}
	return priv
}

// RandomBlockDate generates a random block date
func RandomBlockDate(r *rand.Rand) header.BlockDate {
	return header.BlockDate{
		Epoch:  r.Uint32(),
		SlotID: r.Uint32(),
	}
}

// RandomCommon generates random common metadata for the given version
// tag
func RandomCommon(r *rand.Rand, version header.BlockVersion) header.Common {
	return header.Common{
		Version:          version,
		BlockDate:        RandomBlockDate(r),
		BlockContentSize: r.Uint32(),
		BlockContentHash: RandomHash(r),
		BlockParentHash:  RandomHash(r),
		ChainLength:      header.ChainLength(r.Uint32()),
	}
}

// RandomBftProof generates a BFT proof with a real key and signature
// over arbitrary bytes. The signature is structurally valid but is not
// expected to verify against any particular header.
func RandomBftProof(r *rand.Rand) header.BftProof {
	priv := RandomPrivateKey(r)
	return header.BftProof{
		LeaderID:  priv.Public(),
		Signature: priv.Sign(RandomBytes(r, 16)),
	}
}

// RandomGenesisPraosProof generates a Genesis-Praos proof whose VRF
// component is well formed (decoding checks the gamma point, so random
// bytes would be rejected). The KES component is random bytes.
func RandomGenesisPraosProof(r *rand.Rand) header.GenesisPraosProof {
	_, vrfSecret, err := vrf.KeyGen(RandomBytes(r, vrf.SeedSize))
	if err != nil {
		panic(fmt.Sprintf("unexpected error generating vrf key: %s", err))
	}
	vrfProof, _, err := vrf.Prove(vrfSecret, RandomBytes(r, 32))
	if err != nil {
		panic(fmt.Sprintf("unexpected error generating vrf proof: %s", err))
	}
	proof := header.GenesisPraosProof{
		PraosID: header.NewPraosID(RandomBytes(r, header.PraosIDSize)),
	}
	copy(proof.VrfProof[:], vrfProof)
	copy(proof.KesSignature[:], RandomBytes(r, kes.SignatureSize))
	return proof
}

// RandomHeader generates a header with a random supported version and
// the matching proof variant
func RandomHeader(r *rand.Rand) *header.Header {
	version := header.BlockVersion(r.Intn(3))
	return RandomHeaderWithVersion(r, version)
}

// RandomHeaderWithVersion generates a header for a specific version tag
func RandomHeaderWithVersion(
	r *rand.Rand,
	version header.BlockVersion,
) *header.Header {
	common := RandomCommon(r, version)
	var proof header.Proof
	switch version {
	case header.BlockVersionGenesis:
		proof = header.NoProof{}
	case header.BlockVersionEd25519Signed:
		proof = RandomBftProof(r)
	case header.BlockVersionKesVrfproof:
		proof = RandomGenesisPraosProof(r)
	default:
		panic(fmt.Sprintf("unsupported version %d in generator", version))
	}
	h, err := header.NewHeader(common, proof)
	if err != nil {
		panic(fmt.Sprintf("unexpected error building header: %s", err))
	}
	return h
}

// RandomStakeKeyID generates a random stake key identifier
func RandomStakeKeyID(r *rand.Rand) certificate.StakeKeyID {
	return certificate.NewStakeKeyID(RandomPrivateKey(r).Public())
}

// RandomStakePoolID generates a random stake pool identifier
func RandomStakePoolID(r *rand.Rand) certificate.StakePoolID {
	return certificate.NewStakePoolID(RandomPrivateKey(r).Public())
}

// RandomCertificate generates one of the five certificate payloads
func RandomCertificate(r *rand.Rand) certificate.Certificate {
	switch r.Intn(5) {
	case 0:
		return certificate.StakeKeyRegistration{
			StakeKeyID: RandomStakeKeyID(r),
		}
	case 1:
		return certificate.StakeKeyDeregistration{
			StakeKeyID: RandomStakeKeyID(r),
		}
	case 2:
		return certificate.StakeDelegation{
			StakeKeyID: RandomStakeKeyID(r),
			PoolID:     RandomStakePoolID(r),
		}
	case 3:
		return certificate.StakePoolRegistration{
			PoolID: RandomStakePoolID(r),
		}
	default:
		return certificate.StakePoolRetirement{
			PoolID: RandomStakePoolID(r),
		}
	}
}
