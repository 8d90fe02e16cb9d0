// Package wire provides the canonical binary encoding primitives used to
// build the hash preimages and on-disk representations of blocks and
// transactions. Integer fields use little-endian encoding and byte
// sequences are length-prefixed, except where spec.md explicitly calls
// for big-endian (the PoW preimage's timestamp/nonce fields), which
// callers encode with WriteUint64BE directly.
//
// This mirrors the teacher's wire.ReadElement/WriteElement/WriteVarBytes
// family at reduced scope: no protocol-version negotiation, since this
// encoding only ever backs hash preimages and local persistence, never
// the network wire format (which is JSON, see package netmsg).
package wire

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Writer accumulates a canonical binary encoding.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated encoding.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// WriteUint64LE appends v as 8 little-endian bytes.
func (w *Writer) WriteUint64LE(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

// WriteUint64BE appends v as 8 big-endian bytes.
func (w *Writer) WriteUint64BE(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

// WriteInt64BE appends v as 8 big-endian bytes (spec's nonce preimage field).
func (w *Writer) WriteInt64BE(v int64) {
	w.WriteUint64BE(uint64(v))
}

// WriteInt64LE appends v as 8 little-endian bytes.
func (w *Writer) WriteInt64LE(v int64) {
	w.WriteUint64LE(uint64(v))
}

// WriteUint32LE appends v as 4 little-endian bytes.
func (w *Writer) WriteUint32LE(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

// WriteInt32LE appends v as 4 little-endian bytes.
func (w *Writer) WriteInt32LE(v int32) {
	w.WriteUint32LE(uint32(v))
}

// WriteVarBytes appends a uint32 little-endian length prefix followed by
// the raw bytes of data.
func (w *Writer) WriteVarBytes(data []byte) {
	w.WriteUint32LE(uint32(len(data)))
	w.buf.Write(data)
}

// WriteRaw appends data with no length prefix, as used for the PoW
// preimage's pre_block_hash and transactions-hash fields.
func (w *Writer) WriteRaw(data []byte) {
	w.buf.Write(data)
}

// Reader decodes a canonical binary encoding produced by Writer.
type Reader struct {
	r io.Reader
}

// NewReader wraps data for decoding.
func NewReader(data []byte) *Reader {
	return &Reader{r: bytes.NewReader(data)}
}

// ReadUint64LE reads 8 little-endian bytes.
func (r *Reader) ReadUint64LE() (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r.r, b[:]); err != nil {
		return 0, errors.Wrap(err, "wire: read uint64le")
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// ReadInt64LE reads 8 little-endian bytes as a signed integer.
func (r *Reader) ReadInt64LE() (int64, error) {
	v, err := r.ReadUint64LE()
	return int64(v), err
}

// ReadUint64BE reads 8 big-endian bytes, the counterpart of WriteUint64BE.
func (r *Reader) ReadUint64BE() (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r.r, b[:]); err != nil {
		return 0, errors.Wrap(err, "wire: read uint64be")
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

// ReadUint32LE reads 4 little-endian bytes.
func (r *Reader) ReadUint32LE() (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r.r, b[:]); err != nil {
		return 0, errors.Wrap(err, "wire: read uint32le")
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// ReadInt32LE reads 4 little-endian bytes as a signed integer.
func (r *Reader) ReadInt32LE() (int32, error) {
	v, err := r.ReadUint32LE()
	return int32(v), err
}

// ReadVarBytes reads a uint32 little-endian length prefix followed by
// that many raw bytes.
func (r *Reader) ReadVarBytes() ([]byte, error) {
	n, err := r.ReadUint32LE()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if n > 0 {
		if _, err := io.ReadFull(r.r, buf); err != nil {
			return nil, errors.Wrap(err, "wire: read var bytes")
		}
	}
	return buf, nil
}

// ReadRaw reads exactly n raw bytes with no length prefix.
func (r *Reader) ReadRaw(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, errors.Wrap(err, "wire: read raw")
	}
	return buf, nil
}
