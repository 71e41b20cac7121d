package ngram

import "testing"

func TestCompareBoundedOrdering(t *testing.T) {
	buf := []Char{'b', 'a', 'n', 'a', 'n', 'a', 0, 'b', 'a', 'n', 'd', 0}
	// suffixes: 0 "banana", 7 "band"
	if c := CompareBounded(buf, 0, 7, MaxNGramLength); c >= 0 {
		t.Fatalf("expected banana < band, got %d", c)
	}
	if c := CompareBounded(buf, 7, 0, MaxNGramLength); c <= 0 {
		t.Fatalf("expected band > banana, got %d", c)
	}
	if c := CompareBounded(buf, 0, 0, MaxNGramLength); c != 0 {
		t.Fatalf("expected identical suffixes to compare equal, got %d", c)
	}
}

func TestCompareBoundedTerminator(t *testing.T) {
	buf := []Char{'a', 'b', 0, 'a', 'b', 'c', 0}
	// "ab" vs "abc": ab is a proper prefix, so ab < abc.
	if c := CompareBounded(buf, 0, 3, MaxNGramLength); c >= 0 {
		t.Fatalf("expected ab < abc, got %d", c)
	}
}

func TestCompareBoundedCap(t *testing.T) {
	buf := []Char{'a', 'a', 'a', 'b', 'a', 'a', 'a', 'c'}
	// Capped at 3 elements, both suffixes look identical ("aaa").
	if c := CompareBounded(buf, 0, 4, 3); c != 0 {
		t.Fatalf("expected equality within the cap, got %d", c)
	}
	if c := CompareBounded(buf, 0, 4, 4); c == 0 {
		t.Fatalf("expected inequality once the cap reaches the differing element")
	}
}

func TestCommonPrefixLen(t *testing.T) {
	buf := []Char{'a', 'b', 'c', 'd', 0, 'a', 'b', 'x', 'y', 0}
	if n := CommonPrefixLen(buf, 0, 5); n != 2 {
		t.Fatalf("expected common prefix length 2, got %d", n)
	}
}

func TestCommonPrefixLenStopsAtTerminator(t *testing.T) {
	buf := []Char{'a', 'b', 0, 'a', 'b', 'c', 0}
	if n := CommonPrefixLen(buf, 0, 3); n != 2 {
		t.Fatalf("expected common prefix length 2 (terminator ends the shorter suffix), got %d", n)
	}
}

func TestCommonPrefixLenCap(t *testing.T) {
	buf := make([]Char, 0, 600)
	for i := 0; i < 300; i++ {
		buf = append(buf, 'a')
	}
	if n := CommonPrefixLen(buf, 0, 1); n != MaxNGramLength {
		t.Fatalf("expected common prefix length capped at %d, got %d", MaxNGramLength, n)
	}
}
