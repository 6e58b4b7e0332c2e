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

package vrf

import (
	"crypto/sha512"
	"fmt"

	"filippo.io/edwards25519"
	"filippo.io/edwards25519/field"
)

// hashPoints derives the proof challenge scalar from four curve points.
// Only the first 16 bytes of the hash carry the challenge; the rest of
// the scalar is zero.
func hashPoints(p1, p2, p3, p4 *edwards25519.Point) *edwards25519.Scalar {
	var str [2 + 32*4]byte
	str[0] = Suite
	str[1] = 0x02
	copy(str[2+32*0:], p1.Bytes())
	copy(str[2+32*1:], p2.Bytes())
	copy(str[2+32*2:], p3.Bytes())
	copy(str[2+32*3:], p4.Bytes())
	sum := sha512.Sum512(str[:])

	var scalarBytes [32]byte
	copy(scalarBytes[:], sum[:16])
	r := edwards25519.NewScalar()
	if _, err := r.SetCanonicalBytes(scalarBytes[:]); err != nil {
		panic(err)
	}
	return r
}

// hashToCurve maps (public key, alpha) onto the curve using Elligator2
func hashToCurve(
	Y *edwards25519.Point,
	alpha []byte,
) (*edwards25519.Point, error) {
	hs := sha512.New()
	hs.Write([]byte{Suite})
	hs.Write([]byte{0x01})
	hs.Write(Y.Bytes())
	hs.Write(alpha)
	r := hs.Sum(nil)
	r[31] &= 0x7f // clear sign bit

	hBytes, err := elligator2Map(r)
	if err != nil {
		return nil, err
	}
	result := &edwards25519.Point{}
	if _, err := result.SetBytes(hBytes); err != nil {
		return nil, fmt.Errorf(
			"invalid point encoding from Elligator2: %w",
			err,
		)
	}
	return result, nil
}

const curve25519A = 486662

// elligator2Map maps 32 uniform bytes to an Edwards curve point
// encoding, multiplied by the cofactor
func elligator2Map(r []byte) ([]byte, error) {
	s := make([]byte, 32)
	copy(s, r)
	xSign := s[31] & 0x80
	s[31] &= 0x7f

	one := new(field.Element).One()
	aElement := new(field.Element).Mult32(one, curve25519A)

	// u = -A / (1 + 2*r^2) on the Montgomery curve
	rr2 := &field.Element{}
	// SetBytes reduces any 32 bytes mod p
	_, _ = rr2.SetBytes(s)
	rr2.Square(rr2)
	rr2.Add(rr2, rr2)
	rr2.Add(rr2, one)
	rr2.Invert(rr2)

	x := new(field.Element).Mult32(rr2, curve25519A)
	x.Negate(x)

	// e = chi(x^3 + A*x^2 + x) decides whether u or -u-A is on the curve
	x2 := new(field.Element).Multiply(x, x)
	x3 := new(field.Element).Multiply(x, x2)
	e := new(field.Element).Add(x3, x)
	x2.Mult32(x2, curve25519A)
	e.Add(x2, e)
	e = chi25519(e)
	eBytes := e.Bytes()

	// e is 1 or -1 (p-1); its second byte distinguishes them
	eIsMinus1 := int(eBytes[1] & 1)
	eIsNotMinus1 := eIsMinus1 ^ 1
	negx := new(field.Element).Negate(x)
	x.Select(x, negx, eIsNotMinus1)
	x2.Zero()
	x2.Select(x2, aElement, eIsNotMinus1)
	x.Subtract(x, x2)

	// Convert to Edwards: y = (x-1)/(x+1)
	xPlusOne := new(field.Element).Add(x, one)
	xMinusOne := new(field.Element).Subtract(x, one)
	yed := new(field.Element).Multiply(
		xMinusOne,
		new(field.Element).Invert(xPlusOne),
	)
	s = yed.Bytes()
	s[31] |= xSign

	p3 := &edwards25519.Point{}
	if _, err := p3.SetBytes(s); err != nil {
		return nil, err
	}
	p3.MultByCofactor(p3)
	return p3.Bytes(), nil
}

// squareN squares e in place n times
func squareN(e *field.Element, n int) *field.Element {
	for range n {
		e.Square(e)
	}
	return e
}

// chi25519 computes z^((p-1)/2) = z^(2^254 - 10), the Legendre symbol
// of z, via an addition chain
func chi25519(z *field.Element) *field.Element {
	z2 := new(field.Element).Square(z)
	z3 := new(field.Element).Multiply(z2, z)
	z6 := new(field.Element).Square(z3)
	z12 := new(field.Element).Square(z6)
	z24 := new(field.Element).Square(z12)
	z30 := new(field.Element).Multiply(z24, z6)
	z31 := new(field.Element).Multiply(z30, z) // 2^5 - 1

	t := new(field.Element).Set(z31)
	e10 := new(field.Element).Multiply(squareN(t, 5), z31) // 2^10 - 1
	t.Set(e10)
	e20 := new(field.Element).Multiply(squareN(t, 10), e10) // 2^20 - 1
	t.Set(e20)
	e40 := new(field.Element).Multiply(squareN(t, 20), e20) // 2^40 - 1
	t.Set(e40)
	e50 := new(field.Element).Multiply(squareN(t, 10), e10) // 2^50 - 1
	t.Set(e50)
	e100 := new(field.Element).Multiply(squareN(t, 50), e50) // 2^100 - 1
	t.Set(e100)
	e200 := new(field.Element).Multiply(squareN(t, 100), e100) // 2^200 - 1
	t.Set(e200)
	e250 := new(field.Element).Multiply(squareN(t, 50), e50) // 2^250 - 1

	// (2^250 - 1) * 2^4 + 6 = 2^254 - 10
	return new(field.Element).Multiply(squareN(e250, 4), z6)
}
