package fit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValueToFloat64(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want float64
	}{
		{"uint16", NewUInt16(500), 500},
		{"sint16", NewSInt16(-12), -12},
		{"float32", NewFloat32(1.5), 1.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.v.ToFloat64()
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestValueToFloat64RejectsStringAndArray(t *testing.T) {
	_, err := NewString("hi").ToFloat64()
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot convert")

	_, err = NewArray([]Value{NewUInt8(1)}).ToFloat64()
	require.Error(t, err)
}

func TestValueToInt64RejectsFloat(t *testing.T) {
	_, err := NewFloat64(1.1).ToInt64()
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot convert")
}

func TestValueTimeRoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	v := NewTimestamp(now)
	require.Equal(t, KindTimestamp, v.Kind())
	require.True(t, v.Time().Equal(now))

	unix, err := v.ToInt64()
	require.NoError(t, err)
	require.Equal(t, now.Unix(), unix)
}

func TestFitDataRecordFieldLookup(t *testing.T) {
	rec := &FitDataRecord{}
	rec.push(FitDataField{Name: "heart_rate", Number: 3, Value: NewUInt8(150), Units: "bpm"})

	f, ok := rec.FieldByNumber(3)
	require.True(t, ok)
	require.Equal(t, "heart_rate", f.Name)

	f2, ok := rec.FieldByName("heart_rate")
	require.True(t, ok)
	require.Equal(t, uint8(3), f2.Number)

	_, ok = rec.FieldByNumber(99)
	require.False(t, ok)
}

func TestFitDataFieldString(t *testing.T) {
	f := FitDataField{Value: NewUInt8(42), Units: "bpm"}
	require.Equal(t, "42 bpm", f.String())

	f2 := FitDataField{Value: NewUInt8(42)}
	require.Equal(t, "42", f2.String())
}
