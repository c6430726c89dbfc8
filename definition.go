package fit

import (
	"encoding/binary"

	"github.com/ridgeway-telemetry/fitdecode/internal/cursor"
)

// fieldDefinition is one field slot declared by a definition record.
type fieldDefinition struct {
	number   uint8
	size     uint8
	baseType baseType
}

// developerFieldDefinition is one developer field slot declared by a
// definition record's trailing developer-field block.
type developerFieldDefinition struct {
	number  uint8
	size    uint8
	devIdx  uint8
}

// localDefinition is the live state installed by a definition record for one
// local message type (0-15).
type localDefinition struct {
	localMesgType uint8
	order         binary.ByteOrder
	globalMesgNum uint16
	fields        []fieldDefinition
	devFields     []developerFieldDefinition
}

func parseDefinitionMessage(cur *cursor.Cursor, rh recordHeader) (*localDefinition, error) {
	offset := uint64(cur.Consumed())

	if err := cur.SkipByte(); err != nil { // reserved
		return nil, newUnexpectedEOFError(offset, 1)
	}

	archByte, err := cur.ReadByte()
	if err != nil {
		return nil, newUnexpectedEOFError(offset+1, 1)
	}
	var order binary.ByteOrder
	switch archByte {
	case 0:
		order = binary.LittleEndian
	case 1:
		order = binary.BigEndian
	default:
		return nil, newParseError(offset+1, "unknown architecture byte")
	}

	globalMesgNum, err := cur.ReadUint16(order)
	if err != nil {
		return nil, newUnexpectedEOFError(offset+2, 2)
	}

	fieldCount, err := cur.ReadByte()
	if err != nil {
		return nil, newUnexpectedEOFError(offset+4, 1)
	}

	def := &localDefinition{
		localMesgType: rh.localMesgType,
		order:         order,
		globalMesgNum: globalMesgNum,
		fields:        make([]fieldDefinition, 0, fieldCount),
	}

	for i := 0; i < int(fieldCount); i++ {
		triplet, err := cur.Take(3)
		if err != nil {
			return nil, newUnexpectedEOFError(uint64(cur.Consumed()), 3)
		}
		bt := baseType(triplet[2])
		if !bt.known() {
			return nil, newUnknownBaseTypeError(uint64(cur.Consumed())-1, triplet[2])
		}
		if bt != btString && (triplet[1] == 0 || int(triplet[1])%bt.width() != 0) {
			return nil, newInvalidFieldSizeError(uint64(cur.Consumed())-2, "size is not a positive multiple of base type width")
		}
		def.fields = append(def.fields, fieldDefinition{
			number:   triplet[0],
			size:     triplet[1],
			baseType: bt,
		})
	}

	if rh.developerData {
		devCount, err := cur.ReadByte()
		if err != nil {
			return nil, newUnexpectedEOFError(uint64(cur.Consumed()), 1)
		}
		def.devFields = make([]developerFieldDefinition, 0, devCount)
		for i := 0; i < int(devCount); i++ {
			triplet, err := cur.Take(3)
			if err != nil {
				return nil, newUnexpectedEOFError(uint64(cur.Consumed()), 3)
			}
			def.devFields = append(def.devFields, developerFieldDefinition{
				number: triplet[0],
				size:   triplet[1],
				devIdx: triplet[2],
			})
		}
	}

	return def, nil
}
