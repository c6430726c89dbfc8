package crc16

import "testing"

func TestHashEmpty(t *testing.T) {
	h := New()
	if got := h.Sum16(); got != 0 {
		t.Fatalf("empty hash: got %#04x, want 0", got)
	}
}

func TestHashResetMatchesFresh(t *testing.T) {
	h := New()
	_, _ = h.Write([]byte{1, 2, 3, 4, 5})
	withData := h.Sum16()

	h.Reset()
	if got := h.Sum16(); got != 0 {
		t.Fatalf("after reset: got %#04x, want 0", got)
	}

	_, _ = h.Write([]byte{1, 2, 3, 4, 5})
	if got := h.Sum16(); got != withData {
		t.Fatalf("after reset+rewrite: got %#04x, want %#04x", got, withData)
	}
}

func TestWriteByteAtATimeMatchesBulkWrite(t *testing.T) {
	data := []byte{0x0E, 0x10, 0xD9, 0x07, 0x1E, 0x00, 0x00, 0x00, '.', 'F', 'I', 'T'}

	bulk := New()
	_, _ = bulk.Write(data)

	perByte := New()
	for _, b := range data {
		_, _ = perByte.Write([]byte{b})
	}

	if bulk.Sum16() != perByte.Sum16() {
		t.Fatalf("bulk %#04x != per-byte %#04x", bulk.Sum16(), perByte.Sum16())
	}
}

func TestUpdateByteMatchesWrite(t *testing.T) {
	var crc uint16
	data := []byte{0xAA, 0x55, 0x01, 0x02, 0x03}
	for _, b := range data {
		crc = UpdateByte(crc, b)
	}

	h := New()
	_, _ = h.Write(data)
	if h.Sum16() != crc {
		t.Fatalf("UpdateByte result %#04x != Hash result %#04x", crc, h.Sum16())
	}
}
