package dataset

import "testing"

func TestExpandSubstitutesFields(t *testing.T) {
	row := Datum{"name": "sensor-1", "temp": 21.5, "count": int64(3)}
	got, complete := Expand("{name}: {temp}C x{count}", row)
	if !complete {
		t.Fatalf("expected complete expansion")
	}
	if got != "sensor-1: 21.5C x3" {
		t.Fatalf("unexpected expansion %q", got)
	}
}

func TestExpandReportsMissingFields(t *testing.T) {
	got, complete := Expand("hello {who}", Datum{"other": "x"})
	if complete {
		t.Fatalf("expected incomplete expansion")
	}
	if got != "hello {who}" {
		t.Fatalf("expected reference kept verbatim, got %q", got)
	}

	_, complete = Expand("{value}", Datum{"value": nil})
	if complete {
		t.Fatalf("expected null field to count as missing")
	}
}

func TestExpandNestedAndEscapes(t *testing.T) {
	row := Datum{"owner": map[string]any{"name": "ada"}}
	got, complete := Expand("{{literal}} {owner.name}", row)
	if !complete {
		t.Fatalf("expected complete expansion")
	}
	if got != "{literal} ada" {
		t.Fatalf("unexpected expansion %q", got)
	}
}

func TestExpandEscapesAndUnterminated(t *testing.T) {
	got, complete := Expand("{a} and {{d}} or {", Datum{"a": "x"})
	if !complete || got != "x and {d} or {" {
		t.Fatalf("unexpected expansion %q complete=%v", got, complete)
	}
}

func TestFormat(t *testing.T) {
	cases := map[string]any{
		"":     nil,
		"3":    float64(3),
		"2.5":  2.5,
		"true": true,
		"raw":  []byte("raw"),
	}
	for want, value := range cases {
		if got := Format(value); got != want {
			t.Fatalf("Format(%#v) = %q, want %q", value, got, want)
		}
	}
}
