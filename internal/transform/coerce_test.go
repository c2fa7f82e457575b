package transform

import "testing"

func TestNullableString(t *testing.T) {
	if got := nullableString(nil); got != nil {
		t.Fatalf("nil: got %v", *got)
	}
	if got := nullableString("  "); got != nil {
		t.Fatalf("blank: got %v", *got)
	}
	if got := nullableString("ana@example.com"); got == nil || *got != "ana@example.com" {
		t.Fatalf("string: got %v", got)
	}
}

func TestAsFloat(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{"9.5", 9.5, true},
		{" 12 ", 12, true},
		{"-5.0", -5, true}, // negatives are not parse failures
		{"abc", 0, false},
		{nil, 0, false},
		{float64(3), 3, true},
	}
	for _, c := range cases {
		got, ok := asFloat(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("asFloat(%v) = %v,%v want %v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestAsID(t *testing.T) {
	cases := []struct {
		in   any
		want int64
		ok   bool
	}{
		{"10", 10, true},
		{"10.0", 10, true},
		{"10.5", 0, false},
		{"x", 0, false},
		{nil, 0, false},
		{float64(7), 7, true},
	}
	for _, c := range cases {
		got, ok := asID(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("asID(%v) = %v,%v want %v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestAsDate(t *testing.T) {
	cases := []struct {
		in   any
		want string
		ok   bool
	}{
		{"2024-03-05", "2024-03-05", true},
		{"2024-03-05 14:30:00", "2024-03-05", true},
		{"2024-03-05T14:30:00Z", "2024-03-05", true},
		{"03/05/2024", "2024-03-05", true},
		{"not-a-date", "", false},
		{nil, "", false},
	}
	for _, c := range cases {
		got, ok := asDate(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("asDate(%v) = %q,%v want %q,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}
