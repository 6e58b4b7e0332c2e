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

// Package wire provides the fixed-layout primitive codec used by the
// canonical serialization of headers and certificates. All multi-byte
// integers are big-endian, and every logical value has exactly one valid
// byte encoding. Hashes and signatures are computed over these exact
// bytes, so the layout is part of the protocol, not an implementation
// detail.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// TruncatedError indicates that a decoder ran out of input before the
// fixed-width field it was reading was complete. It is a structural
// error: the byte stream does not conform to the wire format.
type TruncatedError struct {
	Offset int
	Want   int
	Have   int
}

func (e TruncatedError) Error() string {
	return fmt.Sprintf(
		"truncated input at offset %d: want %d bytes, have %d",
		e.Offset,
		e.Want,
		e.Have,
	)
}

func (TruncatedError) Is(target error) bool {
	return target == io.ErrUnexpectedEOF
}

// TrailingDataError indicates that a decoder finished with unconsumed
// bytes remaining in an input that is required to contain exactly one
// value.
type TrailingDataError struct {
	Offset    int
	Remaining int
}

func (e TrailingDataError) Error() string {
	return fmt.Sprintf(
		"%d trailing bytes at offset %d",
		e.Remaining,
		e.Offset,
	)
}

// Writer encodes primitive values to an underlying io.Writer. Errors
// from the underlying writer are propagated unchanged.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) PutUint16(v uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	_, err := w.w.Write(buf[:])
	return err
}

func (w *Writer) PutUint32(v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	_, err := w.w.Write(buf[:])
	return err
}

func (w *Writer) PutBytes(data []byte) error {
	_, err := w.w.Write(data)
	return err
}

// Reader decodes primitive values from an in-memory byte slice. A short
// read yields a TruncatedError carrying the offset at which decoding
// failed.
type Reader struct {
	buf []byte
	pos int
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.pos
}

// Remaining returns the number of unconsumed bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

func (r *Reader) GetUint16() (uint16, error) {
	b, err := r.GetBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *Reader) GetUint32() (uint32, error) {
	b, err := r.GetBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// GetBytes returns the next n bytes of input. The returned slice aliases
// the Reader's buffer and must not be modified.
func (r *Reader) GetBytes(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, TruncatedError{
			Offset: r.pos,
			Want:   n,
			Have:   r.Remaining(),
		}
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Close verifies that the input was consumed exactly.
func (r *Reader) Close() error {
	if r.Remaining() > 0 {
		return TrailingDataError{
			Offset:    r.pos,
			Remaining: r.Remaining(),
		}
	}
	return nil
}
