package fit

import (
	"encoding/binary"

	"github.com/ridgeway-telemetry/fitdecode/internal/crc16"
	"github.com/ridgeway-telemetry/fitdecode/internal/cursor"
)

// FileHeader is the 12- or 14-byte preamble of a FIT sub-file.
type FileHeader struct {
	Length          uint8
	ProtocolVersion uint8
	ProfileVersion  uint16
	DataSize        uint32
	HeaderCRC       uint16
	HasHeaderCRC    bool
}

var fitMagic = [4]byte{'.', 'F', 'I', 'T'}

func readFileHeader(cur *cursor.Cursor) (*FileHeader, error) {
	startOffset := uint64(cur.Consumed())

	lengthByte, err := cur.ReadByte()
	if err != nil {
		return nil, newUnexpectedEOFError(startOffset, 1)
	}
	if lengthByte != 12 && lengthByte != 14 {
		return nil, newParseError(startOffset, "header length must be 12 or 14")
	}

	rest, err := cur.Take(int(lengthByte) - 1)
	if err != nil {
		return nil, newUnexpectedEOFError(startOffset+1, int(lengthByte)-1)
	}

	raw := make([]byte, 0, lengthByte)
	raw = append(raw, lengthByte)
	raw = append(raw, rest...)

	h := &FileHeader{Length: lengthByte}
	h.ProtocolVersion = raw[1]
	h.ProfileVersion = binary.LittleEndian.Uint16(raw[2:4])
	h.DataSize = binary.LittleEndian.Uint32(raw[4:8])
	var magic [4]byte
	copy(magic[:], raw[8:12])
	if magic != fitMagic {
		return nil, newBadMagicError(startOffset + 8)
	}

	if lengthByte == 14 {
		h.HasHeaderCRC = true
		h.HeaderCRC = binary.LittleEndian.Uint16(raw[12:14])
		if h.HeaderCRC != 0 {
			computed := computeCRC(raw[:12])
			if computed != h.HeaderCRC {
				return nil, newBadCRCError(startOffset+12, h.HeaderCRC, computed)
			}
		}
	}

	if h.DataSize == 0 {
		return nil, newParseError(startOffset+4, "data size must be greater than zero")
	}

	return h, nil
}

func computeCRC(b []byte) uint16 {
	h := crc16.New()
	_, _ = h.Write(b)
	return h.Sum16()
}
