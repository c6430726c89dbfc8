package fit

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ridgeway-telemetry/fitdecode/internal/cursor"
)

func buildHeader(t *testing.T, withCRC bool, dataSize uint32) []byte {
	t.Helper()
	length := byte(12)
	if withCRC {
		length = 14
	}
	h := make([]byte, length)
	h[0] = length
	h[1] = 0x10
	binary.LittleEndian.PutUint16(h[2:4], 100)
	binary.LittleEndian.PutUint32(h[4:8], dataSize)
	copy(h[8:12], ".FIT")
	if withCRC {
		crc := computeCRC(h[:12])
		binary.LittleEndian.PutUint16(h[12:14], crc)
	}
	return h
}

func TestReadFileHeaderNoCRC(t *testing.T) {
	raw := buildHeader(t, false, 100)
	cur := cursor.New(bufio.NewReader(bytes.NewReader(raw)))
	h, err := readFileHeader(cur)
	require.NoError(t, err)
	require.Equal(t, uint8(12), h.Length)
	require.False(t, h.HasHeaderCRC)
	require.Equal(t, uint32(100), h.DataSize)
}

func TestReadFileHeaderWithValidCRC(t *testing.T) {
	raw := buildHeader(t, true, 50)
	cur := cursor.New(bufio.NewReader(bytes.NewReader(raw)))
	h, err := readFileHeader(cur)
	require.NoError(t, err)
	require.True(t, h.HasHeaderCRC)
}

func TestReadFileHeaderBadMagic(t *testing.T) {
	raw := buildHeader(t, false, 100)
	raw[8] = 'X'
	cur := cursor.New(bufio.NewReader(bytes.NewReader(raw)))
	_, err := readFileHeader(cur)
	require.Error(t, err)
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	require.Equal(t, KindBadMagic, decErr.Kind)
}

func TestReadFileHeaderZeroDataSize(t *testing.T) {
	raw := buildHeader(t, false, 0)
	cur := cursor.New(bufio.NewReader(bytes.NewReader(raw)))
	_, err := readFileHeader(cur)
	require.Error(t, err)
}

func TestReadFileHeaderBadCRC(t *testing.T) {
	raw := buildHeader(t, true, 50)
	raw[12] ^= 0xFF
	cur := cursor.New(bufio.NewReader(bytes.NewReader(raw)))
	_, err := readFileHeader(cur)
	require.Error(t, err)
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	require.Equal(t, KindBadCRC, decErr.Kind)
}
