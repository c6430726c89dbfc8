package fit

const (
	compressedHeaderMask       = 0x80
	definitionHeaderMask       = 0x40
	developerDataMask          = 0x20
	localMesgNumMask           = 0x0F
	compressedLocalMesgNumMask = 0x60
	compressedTimeMask         = 0x1F
)

// recordHeader is one byte classified into its normal or
// compressed-timestamp shape (spec §3).
type recordHeader struct {
	compressedTimestamp bool
	definition          bool
	developerData       bool
	localMesgType       uint8
	timeOffset          uint8
}

func parseRecordHeader(b byte) recordHeader {
	if b&compressedHeaderMask != 0 {
		return recordHeader{
			compressedTimestamp: true,
			localMesgType:       (b & compressedLocalMesgNumMask) >> 5,
			timeOffset:          b & compressedTimeMask,
		}
	}
	return recordHeader{
		definition:    b&definitionHeaderMask != 0,
		developerData: b&developerDataMask != 0,
		localMesgType: b & localMesgNumMask,
	}
}
