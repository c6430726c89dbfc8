package fit

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ridgeway-telemetry/fitdecode/internal/crc16"
)

// buildFitFile assembles a single-sub-file FIT byte stream from already
// record-header-prefixed message bytes, computing the trailing CRC with the
// same crc16 package the decoder itself uses.
func buildFitFile(t *testing.T, messages ...[]byte) []byte {
	t.Helper()

	var body []byte
	for _, m := range messages {
		body = append(body, m...)
	}

	header := make([]byte, 12)
	header[0] = 12   // length
	header[1] = 0x10 // protocol version
	binary.LittleEndian.PutUint16(header[2:4], 2176)
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(body)))
	copy(header[8:12], ".FIT")

	h := crc16.New()
	_, _ = h.Write(header)
	_, _ = h.Write(body)
	trailer := make([]byte, 2)
	binary.LittleEndian.PutUint16(trailer, h.Sum16())

	out := append([]byte{}, header...)
	out = append(out, body...)
	out = append(out, trailer...)
	return out
}

func definitionMessage(localType uint8, globalMesgNum uint16, fields ...fieldDefinition) []byte {
	msg := []byte{definitionHeaderMask | localType, 0x00, 0x00}
	gm := make([]byte, 2)
	binary.LittleEndian.PutUint16(gm, globalMesgNum)
	msg = append(msg, gm...)
	msg = append(msg, byte(len(fields)))
	for _, fd := range fields {
		msg = append(msg, fd.number, fd.size, byte(fd.baseType))
	}
	return msg
}

func dataMessage(localType uint8, fieldBytes ...byte) []byte {
	return append([]byte{localType}, fieldBytes...)
}

// compressedDataMessage builds a compressed-timestamp record header (spec
// §3) over localType (0-3) and a 5-bit time offset, followed by the data
// record's own field bytes.
func compressedDataMessage(localType uint8, timeOffset uint8, fieldBytes ...byte) []byte {
	header := compressedHeaderMask | (localType << 5) | (timeOffset & compressedTimeMask)
	return append([]byte{header}, fieldBytes...)
}

func TestDecodeFileIDMessage(t *testing.T) {
	data := buildFitFile(t,
		definitionMessage(0, 0, fieldDefinition{number: 0, size: 1, baseType: btEnum}),
		dataMessage(0, 4),
	)

	records, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, records, 1)

	f, ok := records[0].FieldByName("type")
	require.True(t, ok)
	require.Equal(t, "activity", f.Value.Raw())
}

func TestDecodeDropsInvalidSentinelField(t *testing.T) {
	data := buildFitFile(t,
		definitionMessage(0, 20, fieldDefinition{number: 3, size: 1, baseType: btUInt8}),
		dataMessage(0, 0xFF),
	)

	records, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, records, 1)
	_, ok := records[0].FieldByNumber(3)
	require.False(t, ok, "invalid-sentinel field should be dropped")
}

func TestDecodeAppliesScaleOffset(t *testing.T) {
	// record message, field 2 = altitude, scale 5, offset 500:
	// decoded value = raw/scale - offset, so raw = (value+offset)*scale
	raw := uint16((2500 + 500) * 5)
	fieldBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(fieldBytes, raw)

	data := buildFitFile(t,
		definitionMessage(0, 20, fieldDefinition{number: 2, size: 2, baseType: btUInt16}),
		dataMessage(0, fieldBytes[0], fieldBytes[1]),
	)

	records, err := Decode(data)
	require.NoError(t, err)
	f, ok := records[0].FieldByNumber(2)
	require.True(t, ok)
	v, err := f.Value.ToFloat64()
	require.NoError(t, err)
	require.InDelta(t, 2500.0, v, 0.0001)
}

func TestDecodeRejectsBadTrailerCRC(t *testing.T) {
	data := buildFitFile(t,
		definitionMessage(0, 0, fieldDefinition{number: 0, size: 1, baseType: btEnum}),
		dataMessage(0, 4),
	)
	data[len(data)-1] ^= 0xFF // corrupt the trailer

	_, err := Decode(data)
	require.Error(t, err)
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	require.Equal(t, KindBadCRC, decErr.Kind)
}

func TestDecodeMissingDefinitionErrors(t *testing.T) {
	data := buildFitFile(t, dataMessage(3, 0x01))

	_, err := Decode(data)
	require.Error(t, err)
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	require.Equal(t, KindMissingDefinition, decErr.Kind)
}

func TestDecodeCompressedTimestampRolling(t *testing.T) {
	// Absolute timestamp 0x10000010, last5 = 0x10. A redefinition then drops
	// the explicit timestamp field, relying on compressed-header offsets for
	// the next two records: 20 (>= last5, no wrap) then 5 (< last5, wraps
	// +0x20), exercising spec §4.5 step 6's rollover arithmetic.
	rawTS0 := []byte{0x10, 0x00, 0x00, 0x10} // uint32 LE = 0x10000010

	data := buildFitFile(t,
		definitionMessage(0, 20,
			fieldDefinition{number: 253, size: 4, baseType: btUInt32},
			fieldDefinition{number: 3, size: 1, baseType: btUInt8}),
		dataMessage(0, append(append([]byte{}, rawTS0...), 60)...),

		definitionMessage(0, 20, fieldDefinition{number: 3, size: 1, baseType: btUInt8}),
		compressedDataMessage(0, 20, 61),
		compressedDataMessage(0, 5, 62),
	)

	records, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, records, 3)

	wantRaw := []uint32{0x10000010, 0x10000014, 0x10000025}
	for i, rec := range records {
		f, ok := rec.FieldByName("timestamp")
		require.True(t, ok, "record %d missing timestamp", i)
		wantTime := fitEpoch.Add(time.Duration(wantRaw[i]) * time.Second)
		require.True(t, f.Value.Time().Equal(wantTime), "record %d: got %v want %v", i, f.Value.Time(), wantTime)
		if i > 0 {
			require.False(t, f.Value.Time().Before(records[i-1].Fields[0].Value.Time()), "timestamps must be nondecreasing")
		}
	}
}

func TestDecodeChainedFileIsolation(t *testing.T) {
	subA := buildFitFile(t,
		definitionMessage(0, 0, fieldDefinition{number: 0, size: 1, baseType: btEnum}),
		dataMessage(0, 4),
	)
	subB := buildFitFile(t,
		definitionMessage(1, 20, fieldDefinition{number: 3, size: 1, baseType: btUInt8}),
		dataMessage(1, 99),
	)

	chained := append(append([]byte{}, subA...), subB...)

	records, err := Decode(chained)
	require.NoError(t, err)
	require.Len(t, records, 2)

	recordsA, errA := Decode(subA)
	require.NoError(t, errA)
	recordsB, errB := Decode(subB)
	require.NoError(t, errB)
	require.Equal(t, len(recordsA)+len(recordsB), len(records))

	// subA installs a definition for local type 0; a second sub-file chained
	// after it holds only a data record referencing local type 0, with no
	// definition of its own. Decoding subA followed by that probe must fail
	// with MissingDefinition, proving subA's local definitions don't leak
	// across the sub-file boundary.
	leakProbe := buildFitFile(t, dataMessage(0, 0x01))
	_, err = Decode(append(append([]byte{}, subA...), leakProbe...))
	require.Error(t, err)
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	require.Equal(t, KindMissingDefinition, decErr.Kind)
}

func TestDecodeDeveloperField(t *testing.T) {
	// field_description message registers dev field 0/0 as a uint16 named "custom_metric"
	fieldDescBytes := []byte{}
	fieldDescBytes = append(fieldDescBytes, 0x00)       // developer_data_index = 0
	fieldDescBytes = append(fieldDescBytes, 0x00)       // field_definition_number = 0
	fieldDescBytes = append(fieldDescBytes, byte(btUInt16)) // fit_base_type_id
	name := "custom_metric\x00\x00\x00"
	fieldDescBytes = append(fieldDescBytes, []byte(name)...)
	fieldDescBytes = append(fieldDescBytes, []byte("W\x00\x00\x00")...)

	fieldDescDef := definitionMessage(1, 206,
		fieldDefinition{number: 0, size: 1, baseType: btUInt8},
		fieldDefinition{number: 1, size: 1, baseType: btUInt8},
		fieldDefinition{number: 2, size: 1, baseType: btUInt8},
		fieldDefinition{number: 3, size: 16, baseType: btString},
		fieldDefinition{number: 8, size: 4, baseType: btString},
	)
	fieldDescData := dataMessage(1, fieldDescBytes...)

	// definition record with a trailing developer field block
	recDef := []byte{definitionHeaderMask | developerDataMask | 0, 0x00, 0x00}
	gm := make([]byte, 2)
	binary.LittleEndian.PutUint16(gm, 20) // record
	recDef = append(recDef, gm...)
	recDef = append(recDef, 0x00) // zero standard fields
	recDef = append(recDef, 0x01) // one developer field
	recDef = append(recDef, 0x00, 0x02, 0x00) // field num 0, size 2, dev index 0

	devFieldVal := make([]byte, 2)
	binary.LittleEndian.PutUint16(devFieldVal, 777)
	recData := dataMessage(0, devFieldVal...)

	data := buildFitFile(t, fieldDescDef, fieldDescData, recDef, recData)

	records, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, records, 2)

	f, ok := records[1].FieldByName("custom_metric")
	require.True(t, ok)
	require.Equal(t, "W", f.Units)
	require.Equal(t, int64(777), f.Value.Int())
}

func TestDecodeDeveloperFieldZeroSizeIsInvalidFieldSize(t *testing.T) {
	// Same registration as TestDecodeDeveloperField, but the definition
	// declares the developer field's size as 0: the runtime-registered base
	// type (uint16) is only known after field_description streams past, so
	// decodeField itself must reject it rather than indexing an empty slice.
	fieldDescBytes := []byte{}
	fieldDescBytes = append(fieldDescBytes, 0x00)
	fieldDescBytes = append(fieldDescBytes, 0x00)
	fieldDescBytes = append(fieldDescBytes, byte(btUInt16))
	name := "custom_metric\x00\x00\x00"
	fieldDescBytes = append(fieldDescBytes, []byte(name)...)
	fieldDescBytes = append(fieldDescBytes, []byte("W\x00\x00\x00")...)

	fieldDescDef := definitionMessage(1, 206,
		fieldDefinition{number: 0, size: 1, baseType: btUInt8},
		fieldDefinition{number: 1, size: 1, baseType: btUInt8},
		fieldDefinition{number: 2, size: 1, baseType: btUInt8},
		fieldDefinition{number: 3, size: 16, baseType: btString},
		fieldDefinition{number: 8, size: 4, baseType: btString},
	)
	fieldDescData := dataMessage(1, fieldDescBytes...)

	recDef := []byte{definitionHeaderMask | developerDataMask | 0, 0x00, 0x00}
	gm := make([]byte, 2)
	binary.LittleEndian.PutUint16(gm, 20)
	recDef = append(recDef, gm...)
	recDef = append(recDef, 0x00)
	recDef = append(recDef, 0x01)
	recDef = append(recDef, 0x00, 0x00, 0x00) // field num 0, size 0, dev index 0

	data := buildFitFile(t, fieldDescDef, fieldDescData, recDef, dataMessage(0))

	_, err := Decode(data)
	require.Error(t, err)
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	require.Equal(t, KindInvalidFieldSize, decErr.Kind)
}
