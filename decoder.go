package fit

import (
	"bufio"
	"io"
	"time"

	"github.com/ridgeway-telemetry/fitdecode/internal/crc16"
	"github.com/ridgeway-telemetry/fitdecode/internal/cursor"
)

// fitEpoch is the FIT protocol's date_time zero point.
var fitEpoch = time.Date(1989, 12, 31, 0, 0, 0, 0, time.UTC)

// Location selects how decoded date_time fields are rendered.
type Location struct {
	loc *time.Location
}

// UTC renders date_time fields in UTC. This is the default.
var UTC = Location{loc: time.UTC}

// Local renders date_time fields in the decoding machine's local zone.
var Local = Location{loc: time.Local}

// FixedOffset renders date_time fields in a fixed UTC offset, in seconds
// east of UTC, as used by some FIT producers' local_timestamp fields.
func FixedOffset(name string, offsetSeconds int) Location {
	return Location{loc: time.FixedZone(name, offsetSeconds)}
}

func (l Location) resolve() *time.Location {
	if l.loc == nil {
		return time.UTC
	}
	return l.loc
}

// decodeDateTime renders a raw FIT date_time field per spec §4.7: values
// below 0x10000000 are a device's seconds-since-power-on counter and are
// preserved as a plain UInt32 rather than an absolute Timestamp.
func decodeDateTime(raw uint32, loc Location) Value {
	if raw < 0x10000000 {
		return NewUInt32(raw)
	}
	t := fitEpoch.Add(time.Duration(raw) * time.Second).In(loc.resolve())
	return NewTimestamp(t)
}

// Option configures a Decode or DecodeStream call.
type Option func(*decoder)

// WithLocation sets the time zone used to render absolute date_time fields.
// The default is UTC.
func WithLocation(loc Location) Option {
	return func(d *decoder) { d.loc = loc }
}

type devFieldKey struct {
	devIdx   uint8
	fieldNum uint8
}

type devFieldInfo struct {
	name     string
	units    string
	baseType baseType
}

// decoder holds the live, mutable state of one sub-file's worth of decoding:
// installed local definitions, the developer field registry and the rolling
// compressed-timestamp clock (spec §4.4-§4.6).
type decoder struct {
	defs              [16]*localDefinition
	devFields         map[devFieldKey]devFieldInfo
	lastTimestamp     uint32
	haveLastTimestamp bool
	loc               Location
}

func newDecoder(opts ...Option) *decoder {
	d := &decoder{loc: UTC}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *decoder) observeTimestamp(t time.Time) {
	since := t.Sub(fitEpoch)
	secs := uint32(since / time.Second)
	if secs >= 0x10000000 {
		d.lastTimestamp = secs
		d.haveLastTimestamp = true
	}
}

// crcReader wraps a Reader, feeding every byte it yields into a running
// CRC-16 accumulator, mirroring the teacher decoder's io.TeeReader use over
// its internal dyncrc16.Hash16.
type crcReader struct {
	r   *bufio.Reader
	crc *crc16.Hash
}

func newCRCReader(r *bufio.Reader) *crcReader {
	return &crcReader{r: r, crc: crc16.New()}
}

func (cr *crcReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		_, _ = cr.crc.Write(p[:n])
	}
	return n, err
}

func (cr *crcReader) ReadByte() (byte, error) {
	b, err := cr.r.ReadByte()
	if err == nil {
		_, _ = cr.crc.Write([]byte{b})
	}
	return b, err
}

// Decode parses every FIT sub-file chained within data and returns every
// data record decoded across all of them, in stream order, per spec §4.1's
// chained-file handling.
func Decode(data []byte, opts ...Option) ([]*FitDataRecord, error) {
	return DecodeStream(newByteSliceReader(data), opts...)
}

// DecodeStream is Decode's io.Reader counterpart.
func DecodeStream(r io.Reader, opts ...Option) ([]*FitDataRecord, error) {
	br := bufio.NewReader(r)
	var all []*FitDataRecord

	for {
		if _, err := br.Peek(1); err != nil {
			if err == io.EOF {
				break
			}
			return all, newIOError(0, err)
		}

		recs, err := decodeSubFile(br, opts...)
		if err != nil {
			return all, err
		}
		all = append(all, recs...)
	}

	return all, nil
}

func decodeSubFile(br *bufio.Reader, opts ...Option) ([]*FitDataRecord, error) {
	cr := newCRCReader(br)
	cur := cursor.New(cr)

	h, err := readFileHeader(cur)
	if err != nil {
		return nil, err
	}

	dec := newDecoder(opts...)
	var records []*FitDataRecord

	dataStart := uint64(cur.Consumed())
	dataEnd := dataStart + uint64(h.DataSize)

	for uint64(cur.Consumed()) < dataEnd {
		headerByte, err := cur.ReadByte()
		if err != nil {
			return records, err
		}
		rh := parseRecordHeader(headerByte)

		if rh.definition {
			def, err := parseDefinitionMessage(cur, rh)
			if err != nil {
				return records, err
			}
			dec.defs[rh.localMesgType] = def
			continue
		}

		def := dec.defs[rh.localMesgType]
		if def == nil {
			return records, newMissingDefinitionError(uint64(cur.Consumed())-1, rh.localMesgType)
		}

		rec, err := dec.parseDataRecord(cur, def, rh)
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}

	computedCRC := cr.crc.Sum16()

	trailer, err := cur.Take(2)
	if err != nil {
		return records, newUnexpectedEOFError(uint64(cur.Consumed()), 2)
	}
	trailerCRC := uint16(trailer[0]) | uint16(trailer[1])<<8

	if trailerCRC != computedCRC {
		return records, newBadCRCError(uint64(cur.Consumed())-2, trailerCRC, computedCRC)
	}

	return records, nil
}

// byteSliceReader adapts a []byte to io.Reader without copying, so Decode
// can share DecodeStream's chained-file loop.
type byteSliceReader struct {
	b []byte
	i int
}

func newByteSliceReader(b []byte) *byteSliceReader { return &byteSliceReader{b: b} }

func (r *byteSliceReader) Read(p []byte) (int, error) {
	if r.i >= len(r.b) {
		return 0, io.EOF
	}
	n := copy(p, r.b[r.i:])
	r.i += n
	return n, nil
}
