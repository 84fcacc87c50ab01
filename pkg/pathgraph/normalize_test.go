package pathgraph

import "testing"

func TestMatchKeyCaseSensitive(t *testing.T) {
	if matchKey("Foo", true) == matchKey("foo", true) {
		t.Error("expected case-sensitive match keys to differ by case")
	}
}

func TestMatchKeyCaseInsensitive(t *testing.T) {
	if matchKey("Foo", false) != matchKey("foo", false) {
		t.Error("expected case-insensitive match keys to be equal regardless of case")
	}
}

func TestMatchKeyUnicodeEquivalence(t *testing.T) {
	// Precomposed U+00E9 ("e" with acute accent, NFC) versus the
	// decomposed sequence U+0065 U+0301 ("e" plus a combining acute
	// accent, NFD) must normalize to the same NFKD match key.
	composed := "café"
	decomposed := "café"
	if matchKey(composed, true) != matchKey(decomposed, true) {
		t.Error("expected NFKD-equivalent names to produce the same match key")
	}
}

func TestMatchKeyStable(t *testing.T) {
	if matchKey("repeat", true) != matchKey("repeat", true) {
		t.Error("expected repeated calls to be stable")
	}
}
