package random

import "testing"

func TestSeq(t *testing.T) {
	s := Seq(32)
	if len(s) != 32 {
		t.Fatalf("Seq(32) length = %d, expected 32", len(s))
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		default:
			t.Fatalf("Seq() produced non-alphanumeric rune %q", r)
		}
	}

	if Seq(32) == Seq(32) {
		t.Error("two generated sequences are identical")
	}
}
