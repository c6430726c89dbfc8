package profile

import "testing"

func TestMesgNumStringKnown(t *testing.T) {
	if got := MesgNum(0).String(); got != "file_id" {
		t.Fatalf("MesgNum(0).String() = %q, want file_id", got)
	}
}

func TestMesgNumStringUnknownFallsBackToSynthetic(t *testing.T) {
	if got := MesgNum(9999).String(); got != "unknown_9999" {
		t.Fatalf("MesgNum(9999).String() = %q, want unknown_9999", got)
	}
}

func TestKnownMessage(t *testing.T) {
	if !KnownMessage(20) {
		t.Fatal("20 (record) should be a known message")
	}
	if KnownMessage(9999) {
		t.Fatal("9999 should not be a known message")
	}
}

func TestDefaultProfileFieldByNumberKnown(t *testing.T) {
	msg := Default.MessageByNumber(20)
	fi, ok := Default.FieldByNumber(msg, 2)
	if !ok {
		t.Fatal("expected record field 2 (altitude) to resolve")
	}
	if fi.Name != "altitude" || fi.Scale != 5 || fi.Offset != 500 {
		t.Fatalf("unexpected FieldInfo: %+v", fi)
	}
}

func TestDefaultProfileFieldByNumberUnknown(t *testing.T) {
	msg := Default.MessageByNumber(20)
	fi, ok := Default.FieldByNumber(msg, 250)
	if ok {
		t.Fatal("field 250 should not resolve for record")
	}
	if fi.Name != "unknown_250" {
		t.Fatalf("fi.Name = %q, want unknown_250", fi.Name)
	}
}

func TestDefaultProfileMessageByNumberUnknown(t *testing.T) {
	msg := Default.MessageByNumber(9999)
	if msg.Name != "unknown_9999" {
		t.Fatalf("msg.Name = %q, want unknown_9999", msg.Name)
	}
}

func TestFileIDTypeEnum(t *testing.T) {
	msg := Default.MessageByNumber(0)
	fi, ok := Default.FieldByNumber(msg, 0)
	if !ok || fi.Enum == nil {
		t.Fatal("file_id.type should resolve with an enum decoder")
	}
	name, ok := fi.Enum(4)
	if !ok || name != "activity" {
		t.Fatalf("fi.Enum(4) = (%q, %v), want (activity, true)", name, ok)
	}
	if _, ok := fi.Enum(250); ok {
		t.Fatal("fi.Enum(250) should not resolve")
	}
}
