package models

import (
	"encoding/json"
	"testing"
)

func TestFlexIDUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  FlexID
	}{
		{"string id", `"abc-1"`, "abc-1"},
		{"numeric id", `42`, "42"},
		{"float id keeps digits", `42.0`, "42.0"},
		{"null", `null`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got FlexID
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("Unmarshal(%s): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFlexIDEqualityAcrossForms(t *testing.T) {
	// The same id served once as a number and once as a string must
	// compare equal after decoding.
	var a, b FlexID
	if err := json.Unmarshal([]byte(`1`), &a); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(`"1"`), &b); err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("%q != %q", a, b)
	}
}

func TestFlexIDMarshal(t *testing.T) {
	out, err := json.Marshal(FlexID("7"))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `"7"` {
		t.Errorf("Marshal = %s", out)
	}
}

func TestFlexIntUnmarshal(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValue int
		wantValid bool
	}{
		{"number", `3`, 3, true},
		{"numeric string", `"3"`, 3, true},
		{"float truncates", `2.9`, 2, true},
		{"non-numeric string", `"first"`, 0, false},
		{"null", `null`, 0, false},
		{"empty string", `""`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got FlexInt
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("Unmarshal(%s): %v", tt.input, err)
			}
			if got.Valid != tt.wantValid {
				t.Fatalf("Valid = %v, want %v", got.Valid, tt.wantValid)
			}
			if got.Valid && got.Value != tt.wantValue {
				t.Errorf("Value = %d, want %d", got.Value, tt.wantValue)
			}
		})
	}
}

func TestFlexIntMalformedDoesNotFailRecord(t *testing.T) {
	// A section with a junk order must still decode; the order is just
	// treated as absent.
	var s Section
	data := []byte(`{"id":1,"category":"Basics","order":"first","status":"published"}`)
	if err := json.Unmarshal(data, &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if s.Order.Valid {
		t.Error("malformed order should be invalid")
	}
	if s.EffectiveOrder() != OrderSentinel {
		t.Errorf("EffectiveOrder = %d, want %d", s.EffectiveOrder(), OrderSentinel)
	}
}
