package locale

import "testing"

func TestParseCountPlain(t *testing.T) {
	n, ok := ParseCount("2,300")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if n != 2300 {
		t.Errorf("expected 2300, got %d", n)
	}
}

func TestParseCountSuffixes(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"1.5k", 1500},
		{"1.5K", 1500},
		{"2m", 2000000},
		{"3.2M", 3200000},
		{"1b", 1000000000},
		{"12k likes", 12000},
		{"Reactions: 4.7k", 4700},
	}
	for _, c := range cases {
		n, ok := ParseCount(c.in)
		if !ok {
			t.Errorf("%q: expected parse to succeed", c.in)
			continue
		}
		if n != c.want {
			t.Errorf("%q: expected %d, got %d", c.in, c.want, n)
		}
	}
}

func TestParseCountArabic(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"٣٤٥", 345},
		{"٢٫٥ ألف", 2500},
		{"3 آلاف", 3000},
		{"١٢ مليون متابع", 12000000},
		{"5 ملايين", 5000000},
		{"2 مليار", 2000000000},
	}
	for _, c := range cases {
		n, ok := ParseCount(c.in)
		if !ok {
			t.Errorf("%q: expected parse to succeed", c.in)
			continue
		}
		if n != c.want {
			t.Errorf("%q: expected %d, got %d", c.in, c.want, n)
		}
	}
}

func TestParseCountSuffixNotSwallowedByWords(t *testing.T) {
	// "3 minutes" must not read the leading "m" of minutes as a
	// million suffix.
	n, ok := ParseCount("3 minutes")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if n != 3 {
		t.Errorf("expected 3, got %d", n)
	}
}

func TestParseCountUnparsable(t *testing.T) {
	for _, in := range []string{"", "no numbers here", "ألف", "···"} {
		if n, ok := ParseCount(in); ok {
			t.Errorf("%q: expected absent, got %d", in, n)
		}
	}
}

func TestParseCountMonotonic(t *testing.T) {
	// Growing the numeric token while holding the suffix fixed never
	// decreases the result.
	suffixes := []string{"", "k", "m", "b", " ألف", " مليون", " مليار"}
	for _, suf := range suffixes {
		prev := int64(-1)
		for _, tok := range []string{"1", "2", "15", "150", "999"} {
			n, ok := ParseCount(tok + suf)
			if !ok {
				t.Fatalf("%q: expected parse to succeed", tok+suf)
			}
			if n < prev {
				t.Errorf("suffix %q: %d < previous %d", suf, n, prev)
			}
			prev = n
		}
	}
}

func TestParseCountOverflowRejected(t *testing.T) {
	// A token×magnitude product past int64 must come back as a miss,
	// never as a wrapped negative count.
	for _, raw := range []string{"99999999999b", "9999999999999999999", "99999999999 مليار"} {
		if n, ok := ParseCount(raw); ok {
			t.Errorf("ParseCount(%q) = %d, ok=true; expected a miss", raw, n)
		}
	}

	// The largest in-range magnitudes still parse and stay ordered.
	small, ok := ParseCount("9b")
	if !ok || small != 9_000_000_000 {
		t.Fatalf("ParseCount(9b) = %d, %v", small, ok)
	}
	big, ok := ParseCount("900b")
	if !ok || big < small {
		t.Errorf("ParseCount(900b) = %d, ok=%v; want >= %d", big, ok, small)
	}
}

func TestNormalizeDigits(t *testing.T) {
	got := NormalizeDigits("٣٬٢٥٠٫٧")
	if got != "3,250.7" {
		t.Errorf("expected 3,250.7, got %q", got)
	}
}
