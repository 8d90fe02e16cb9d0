package wire

import "testing"

func TestUint64BERoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteUint64BE(0x0102030405060708)

	r := NewReader(w.Bytes())
	got, err := r.ReadUint64BE()
	if err != nil {
		t.Fatalf("ReadUint64BE() error = %v", err)
	}
	if got != 0x0102030405060708 {
		t.Fatalf("ReadUint64BE() = %#x; want %#x", got, 0x0102030405060708)
	}
}

func TestVarBytesRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteVarBytes([]byte("unspent transaction output"))
	w.WriteVarBytes(nil)

	r := NewReader(w.Bytes())
	got, err := r.ReadVarBytes()
	if err != nil {
		t.Fatalf("ReadVarBytes() error = %v", err)
	}
	if string(got) != "unspent transaction output" {
		t.Fatalf("ReadVarBytes() = %q; want %q", got, "unspent transaction output")
	}

	empty, err := r.ReadVarBytes()
	if err != nil {
		t.Fatalf("ReadVarBytes() (empty) error = %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("ReadVarBytes() (empty) = %v; want empty", empty)
	}
}

func TestWriterBytesReflectsAllWrites(t *testing.T) {
	w := NewWriter()
	w.WriteUint32LE(1)
	w.WriteInt32LE(-1)
	w.WriteUint64LE(2)
	w.WriteInt64LE(-2)
	w.WriteRaw([]byte{0xAB})

	r := NewReader(w.Bytes())

	u32, err := r.ReadUint32LE()
	if err != nil || u32 != 1 {
		t.Fatalf("ReadUint32LE() = %d, %v; want 1, nil", u32, err)
	}
	i32, err := r.ReadInt32LE()
	if err != nil || i32 != -1 {
		t.Fatalf("ReadInt32LE() = %d, %v; want -1, nil", i32, err)
	}
	u64, err := r.ReadUint64LE()
	if err != nil || u64 != 2 {
		t.Fatalf("ReadUint64LE() = %d, %v; want 2, nil", u64, err)
	}
	i64, err := r.ReadInt64LE()
	if err != nil || i64 != -2 {
		t.Fatalf("ReadInt64LE() = %d, %v; want -2, nil", i64, err)
	}
	raw, err := r.ReadRaw(1)
	if err != nil || raw[0] != 0xAB {
		t.Fatalf("ReadRaw(1) = %v, %v; want [0xAB], nil", raw, err)
	}
}

func TestReadPastEndOfBufferErrors(t *testing.T) {
	r := NewReader([]byte{0x01})
	if _, err := r.ReadUint64LE(); err == nil {
		t.Fatal("ReadUint64LE() on truncated input: want error, got nil")
	}
}
