package lexutil

import "testing"

func TestIdentAt(t *testing.T) {
	cases := []struct {
		src      string
		start    int
		wantName string
		wantEnd  int
		wantOK   bool
	}{
		{"Foo: 3;", 0, "Foo", 3, true},
		{"  Foo", 2, "Foo", 5, true},
		{"3abc", 0, "", 0, false},
		{"_priv9x", 0, "_priv9x", 7, true},
		{"", 0, "", 0, false},
	}
	for _, c := range cases {
		name, end, ok := IdentAt([]byte(c.src), c.start)
		if name != c.wantName || end != c.wantEnd || ok != c.wantOK {
			t.Errorf("IdentAt(%q, %d) = (%q, %d, %v), want (%q, %d, %v)",
				c.src, c.start, name, end, ok, c.wantName, c.wantEnd, c.wantOK)
		}
	}
}

func TestSkipWhitespaceAndComments(t *testing.T) {
	cases := []struct {
		src  string
		from int
		want int
	}{
		{"   Foo", 0, 3},
		{"// a comment\nFoo", 0, 13},
		{"  // one\n  // two\nFoo", 0, 18},
		{"Foo", 0, 0},
		{"   ", 0, 3},
	}
	for _, c := range cases {
		got := SkipWhitespaceAndComments([]byte(c.src), c.from)
		if got != c.want {
			t.Errorf("SkipWhitespaceAndComments(%q, %d) = %d, want %d", c.src, c.from, got, c.want)
		}
	}
}

func TestIsIdentClasses(t *testing.T) {
	if !IsIdentStart('a') || !IsIdentStart('_') || IsIdentStart('1') {
		t.Fatal("IsIdentStart classification wrong")
	}
	if !IsIdentChar('1') || !IsIdentChar('Z') || IsIdentChar('-') {
		t.Fatal("IsIdentChar classification wrong")
	}
}
