package fit

import (
	"encoding/binary"
	"math"

	"github.com/ridgeway-telemetry/fitdecode/internal/cursor"
	"github.com/ridgeway-telemetry/fitdecode/profile"
)

func decodeElement(buf []byte, bt baseType, order binary.ByteOrder) Value {
	switch bt {
	case btEnum:
		return NewEnum(buf[0])
	case btByte:
		return NewByte(buf[0])
	case btSInt8:
		return NewSInt8(int8(buf[0]))
	case btUInt8:
		return NewUInt8(buf[0])
	case btUInt8z:
		return NewUInt8z(buf[0])
	case btSInt16:
		return NewSInt16(int16(order.Uint16(buf)))
	case btUInt16:
		return NewUInt16(order.Uint16(buf))
	case btUInt16z:
		return NewUInt16z(order.Uint16(buf))
	case btSInt32:
		return NewSInt32(int32(order.Uint32(buf)))
	case btUInt32:
		return NewUInt32(order.Uint32(buf))
	case btUInt32z:
		return NewUInt32z(order.Uint32(buf))
	case btFloat32:
		return NewFloat32(math.Float32frombits(order.Uint32(buf)))
	case btFloat64:
		return NewFloat64(math.Float64frombits(order.Uint64(buf)))
	case btSInt64:
		return NewSInt64(int64(order.Uint64(buf)))
	case btUInt64:
		return NewUInt64(order.Uint64(buf))
	case btUInt64z:
		return NewUInt64z(order.Uint64(buf))
	default:
		return Value{}
	}
}

// decodeField reads one field definition's raw bytes and reduces them to
// either a scalar Value or an Array Value, per spec §4.5 step 2. Strings are
// always scalar. Returns ok=false when every element is the base type's
// invalid sentinel (step 3: the field must then be dropped); a string whose
// first byte is the 0x00 sentinel decodes empty and is dropped the same way.
func decodeField(cur *cursor.Cursor, size int, bt baseType, order binary.ByteOrder) (Value, bool, error) {
	if bt == btString {
		s, err := cur.ReadString(size)
		if err != nil {
			return Value{}, false, err
		}
		if s == "" {
			return Value{}, false, nil
		}
		return NewString(s), true, nil
	}

	width := bt.width()
	if size == 0 || size%width != 0 {
		return Value{}, false, newInvalidFieldSizeError(uint64(cur.Consumed()), "size is not a positive multiple of base type width")
	}

	raw, err := cur.Take(size)
	if err != nil {
		return Value{}, false, err
	}

	count := size / width
	if count <= 1 {
		if elementAllInvalid(raw, bt) {
			return Value{}, false, nil
		}
		return decodeElement(raw, bt, order), true, nil
	}

	elems := make([]Value, 0, count)
	allInvalid := true
	for i := 0; i < count; i++ {
		elem := raw[i*width : (i+1)*width]
		if !elementAllInvalid(elem, bt) {
			allInvalid = false
		}
		elems = append(elems, decodeElement(elem, bt, order))
	}
	if allInvalid {
		return Value{}, false, nil
	}
	return NewArray(elems), true, nil
}

// resolveField applies a profile FieldInfo's date_time/enum/scale-offset
// projection to a raw decoded Value, per spec §4.5 step 4.
func resolveField(fi profile.FieldInfo, raw Value, loc Location) Value {
	if fi.DateTime && raw.Kind() != KindArray {
		rawU, err := raw.ToInt64()
		if err == nil {
			return decodeDateTime(uint32(rawU), loc)
		}
	}
	if fi.Enum != nil && raw.Kind() != KindArray && raw.Kind() != KindString {
		if name, ok := fi.Enum(uint64(raw.Int())); ok {
			return NewString(name)
		}
	}
	if fi.Scale != 0 && raw.Kind() != KindArray && raw.Kind() != KindString {
		f, err := raw.ToFloat64()
		if err == nil {
			return NewFloat64(f/fi.Scale - fi.Offset)
		}
	}
	return raw
}

func (d *decoder) parseDataRecord(cur *cursor.Cursor, def *localDefinition, rh recordHeader) (*FitDataRecord, error) {
	msgInfo := profile.Default.MessageByNumber(def.globalMesgNum)
	rec := &FitDataRecord{Kind: profile.MesgNum(def.globalMesgNum)}

	if rh.compressedTimestamp && d.haveLastTimestamp {
		offset := uint32(rh.timeOffset)
		last5 := d.lastTimestamp & compressedTimeMask
		newTs := (d.lastTimestamp &^ uint32(compressedTimeMask)) | offset
		if offset < last5 {
			newTs += 0x20
		}
		d.lastTimestamp = newTs

		tsFieldInfo, ok := profile.Default.FieldByNumber(msgInfo, profile.FieldNumTimestamp)
		if !ok {
			tsFieldInfo = profile.FieldInfo{Name: "timestamp", DateTime: true}
		}
		rec.push(FitDataField{
			Name:   tsFieldInfo.Name,
			Number: profile.FieldNumTimestamp,
			Value:  decodeDateTime(d.lastTimestamp, d.loc),
			Units:  tsFieldInfo.Units,
		})
	}

	isFieldDescription := def.globalMesgNum == profile.MesgNumFieldDescription.AsUint16()
	var fdesc fieldDescriptionAccum

	for _, fd := range def.fields {
		raw, ok, err := decodeField(cur, int(fd.size), fd.baseType, def.order)
		if err != nil {
			return nil, err
		}

		if isFieldDescription {
			fdesc.observe(fd.number, raw)
		}

		if !ok {
			continue
		}

		fi, pfound := profile.Default.FieldByNumber(msgInfo, fd.number)

		value := raw
		units := ""
		if pfound {
			value = resolveField(fi, raw, d.loc)
			units = fi.Units
			if fi.DateTime && value.Kind() == KindTimestamp {
				d.observeTimestamp(value.Time())
			}
		}

		rec.push(FitDataField{Name: fi.Name, Number: fd.number, Value: value, Units: units})
	}

	if isFieldDescription && fdesc.complete() {
		d.registerDeveloperField(fdesc)
	}

	for _, dfd := range def.devFields {
		info, found := d.devFields[devFieldKey{devIdx: dfd.devIdx, fieldNum: dfd.number}]
		if !found {
			return nil, &DecodeError{Kind: KindCustom, Offset: uint64(cur.Consumed()), Message: "unknown developer field"}
		}
		raw, ok, err := decodeField(cur, int(dfd.size), info.baseType, def.order)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		rec.push(FitDataField{Name: info.name, Number: dfd.number, Value: raw, Units: info.units})
	}

	return rec, nil
}

// fieldDescriptionAccum collects the handful of fields that make up one
// field_description message instance as they stream past in declaration
// order, per spec §4.6's developer field registration.
type fieldDescriptionAccum struct {
	devIdx    uint8
	fieldNum  uint8
	baseType  baseType
	name      string
	units     string
	haveIdx   bool
	haveField bool
	haveType  bool
	haveName  bool
}

func (a *fieldDescriptionAccum) observe(fieldNumber uint8, v Value) {
	switch fieldNumber {
	case profile.FieldDevDataIndex:
		if n, err := v.ToInt64(); err == nil {
			a.devIdx = uint8(n)
			a.haveIdx = true
		}
	case profile.FieldDevFieldDefNumber:
		if n, err := v.ToInt64(); err == nil {
			a.fieldNum = uint8(n)
			a.haveField = true
		}
	case profile.FieldDevFitBaseTypeID:
		if n, err := v.ToInt64(); err == nil {
			a.baseType = baseType(n)
			a.haveType = true
		}
	case profile.FieldDevFieldName:
		a.name = v.Raw()
		a.haveName = true
	case profile.FieldDevUnits:
		a.units = v.Raw()
	}
}

func (a *fieldDescriptionAccum) complete() bool {
	return a.haveIdx && a.haveField && a.haveType && a.haveName
}

func (d *decoder) registerDeveloperField(a fieldDescriptionAccum) {
	if d.devFields == nil {
		d.devFields = make(map[devFieldKey]devFieldInfo)
	}
	d.devFields[devFieldKey{devIdx: a.devIdx, fieldNum: a.fieldNum}] = devFieldInfo{
		name:     a.name,
		units:    a.units,
		baseType: a.baseType,
	}
}
