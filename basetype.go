package fit

// baseType is the FIT wire-format base type tag (field definition's third
// byte), per spec §3/§4.4's catalog.
type baseType uint8

const (
	btEnum    baseType = 0x00
	btSInt8   baseType = 0x01
	btUInt8   baseType = 0x02
	btString  baseType = 0x07
	btUInt8z  baseType = 0x0A
	btByte    baseType = 0x0D
	btSInt16  baseType = 0x83
	btUInt16  baseType = 0x84
	btUInt16z baseType = 0x8B
	btSInt32  baseType = 0x85
	btUInt32  baseType = 0x86
	btFloat32 baseType = 0x88
	btUInt32z baseType = 0x8C
	btSInt64  baseType = 0x8E
	btUInt64  baseType = 0x8F
	btFloat64 baseType = 0x89
	btUInt64z baseType = 0x90
)

type baseTypeInfo struct {
	width int
	// invalid is the bit pattern, per element of width bytes, that marks an
	// absent reading for this base type.
	invalid uint64
}

var baseTypeTable = map[baseType]baseTypeInfo{
	btEnum:    {width: 1, invalid: 0xFF},
	btSInt8:   {width: 1, invalid: 0xFF},
	btUInt8:   {width: 1, invalid: 0xFF},
	btString:  {width: 1, invalid: 0x00},
	btUInt8z:  {width: 1, invalid: 0x00},
	btByte:    {width: 1, invalid: 0xFF},
	btSInt16:  {width: 2, invalid: 0xFFFF},
	btUInt16:  {width: 2, invalid: 0xFFFF},
	btUInt16z: {width: 2, invalid: 0x0000},
	btSInt32:  {width: 4, invalid: 0xFFFFFFFF},
	btUInt32:  {width: 4, invalid: 0xFFFFFFFF},
	btFloat32: {width: 4, invalid: 0xFFFFFFFF},
	btUInt32z: {width: 4, invalid: 0x00000000},
	btSInt64:  {width: 8, invalid: 0xFFFFFFFFFFFFFFFF},
	btUInt64:  {width: 8, invalid: 0xFFFFFFFFFFFFFFFF},
	btFloat64: {width: 8, invalid: 0xFFFFFFFFFFFFFFFF},
	btUInt64z: {width: 8, invalid: 0x0000000000000000},
}

func (bt baseType) known() bool {
	_, ok := baseTypeTable[bt]
	return ok
}

func (bt baseType) width() int {
	return baseTypeTable[bt].width
}

func (bt baseType) invalidPattern() uint64 {
	return baseTypeTable[bt].invalid
}

// isZType reports whether bt's invalid sentinel is 0 rather than all-ones.
func (bt baseType) isZType() bool {
	switch bt {
	case btUInt8z, btUInt16z, btUInt32z, btUInt64z, btString:
		return true
	default:
		return false
	}
}

// elementAllInvalid reports whether elem (one element of bt's width) equals
// bt's invalid sentinel. The bytes are read little-endian; every sentinel is
// all-ones or all-zeros, so the byte order does not change the result.
func elementAllInvalid(elem []byte, bt baseType) bool {
	info, ok := baseTypeTable[bt]
	if !ok {
		return false
	}
	var v uint64
	for i := 0; i < info.width; i++ {
		v |= uint64(elem[i]) << (8 * uint(i))
	}
	return v == info.invalid
}
