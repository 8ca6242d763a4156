package domain

import (
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestParseDateOnlyStrictFormat(t *testing.T) {
	valid := []string{"2026-01-02", "2026-12-31", "2000-02-29"}
	for _, s := range valid {
		date, err := ParseDateOnly(s)
		if err != nil {
			t.Errorf("ParseDateOnly(%q) failed: %v", s, err)
			continue
		}
		if date.String() != s {
			t.Errorf("ParseDateOnly(%q).String() = %q", s, date.String())
		}
	}

	invalid := []string{"", "2026-1-2", "02/01/2026", "2026-13-01", "2026-02-30", "tomorrow", "2026-01-02T00:00:00Z"}
	for _, s := range invalid {
		if _, err := ParseDateOnly(s); err == nil {
			t.Errorf("ParseDateOnly(%q) should have failed", s)
		}
	}
}

func TestParseClockTimeStrictFormat(t *testing.T) {
	cases := map[string]string{
		"00:00": "00:00",
		"09:30": "09:30",
		"23:59": "23:59",
	}
	for in, want := range cases {
		got, err := ParseClockTime(in)
		if err != nil {
			t.Errorf("ParseClockTime(%q) failed: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseClockTime(%q) = %q, want %q", in, got, want)
		}
	}

	invalid := []string{"", "24:00", "12:60", "2pm", "9:30am", "12.30"}
	for _, s := range invalid {
		if _, err := ParseClockTime(s); err == nil {
			t.Errorf("ParseClockTime(%q) should have failed", s)
		}
	}
}

func TestDateOnlyJSONFormat(t *testing.T) {
	date, err := ParseDateOnly("2026-09-15")
	if err != nil {
		t.Fatalf("ParseDateOnly failed: %v", err)
	}

	data, err := json.Marshal(date)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"2026-09-15"` {
		t.Errorf("Expected \"2026-09-15\", got %s", data)
	}

	var parsed DateOnly
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if parsed.String() != "2026-09-15" {
		t.Errorf("Round trip changed the date to %s", parsed)
	}

	if err := json.Unmarshal([]byte(`"15/09/2026"`), &parsed); err == nil {
		t.Error("Expected unmarshal of a non-ISO date to fail")
	}
}

func TestStringListScanVariants(t *testing.T) {
	var list StringList

	if err := list.Scan([]byte(`["a","b"]`)); err != nil {
		t.Fatalf("Scan []byte failed: %v", err)
	}
	if len(list) != 2 || list[0] != "a" {
		t.Errorf("Unexpected scan result: %v", list)
	}

	if err := list.Scan(`["c"]`); err != nil {
		t.Fatalf("Scan string failed: %v", err)
	}
	if len(list) != 1 || list[0] != "c" {
		t.Errorf("Unexpected scan result: %v", list)
	}

	if err := list.Scan(nil); err != nil {
		t.Fatalf("Scan nil failed: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("Expected empty list for NULL, got %v", list)
	}

	if err := list.Scan(42); err == nil {
		t.Error("Expected scan of an int to fail")
	}
}

func TestStringListNilValuesAsEmptyArray(t *testing.T) {
	var list StringList
	value, err := list.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if string(value.([]byte)) != "[]" {
		t.Errorf("Expected nil list to store as [], got %s", value)
	}
}

func TestProperty_StringListRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("value then scan returns the same list", prop.ForAll(
		func(items []string) bool {
			list := StringList(items)
			value, err := list.Value()
			if err != nil {
				return false
			}

			var scanned StringList
			if err := scanned.Scan(value); err != nil {
				return false
			}
			if len(scanned) != len(items) {
				return false
			}
			for i := range items {
				if scanned[i] != items[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AnyString()),
	))

	properties.TestingRun(t)
}
