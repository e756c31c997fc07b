package typeface

import (
	"testing"
)

func TestFixedMetrics(t *testing.T) {
	f := NewFixed("Body", 10)
	if got := f.Ascender(); got != 9 {
		t.Errorf("Ascender() = %v, want 9", got)
	}
	if got := f.Descender(); got != -3 {
		t.Errorf("Descender() = %v, want -3", got)
	}
	if got := f.LineHeight(); got != 12 {
		t.Errorf("LineHeight() = %v, want 12", got)
	}
	if got := f.Advance("abc"); got != 15 {
		t.Errorf("Advance(abc) = %v, want 15", got)
	}
	if got := f.Advance("\u200b"); got != 0 {
		t.Errorf("zero width space advance = %v, want 0", got)
	}
	if got := f.Advance("😀"); got != 10 {
		t.Errorf("emoji advance = %v, want 10", got)
	}
	if f.IsEmoji() {
		t.Error("Body face reported as emoji")
	}
	if !Emoji(10).IsEmoji() {
		t.Error("Emoji face not reported as emoji")
	}
	if got := f.WithSize(20).Advance("a"); got != 10 {
		t.Errorf("WithSize(20).Advance(a) = %v, want 10", got)
	}
}

func TestFixedFacesCompareEqual(t *testing.T) {
	var a, b Face = NewFixed("Body", 12), NewFixed("Body", 12)
	if a != b {
		t.Error("equal fixed faces compare unequal")
	}
}

func TestContainsEmoji(t *testing.T) {
	tests := map[string]bool{
		"plain":  false,
		"hi 😀":   true,
		"✂ cut":  true,
		"中文":     false,
		"🇳🇿":     true,
		"":       false,
		"x\ufe0f": true,
	}
	for s, want := range tests {
		if got := ContainsEmoji(s); got != want {
			t.Errorf("ContainsEmoji(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestGoRegularFace(t *testing.T) {
	f, err := GoRegular().Face(16)
	if err != nil {
		t.Fatalf("Face(16): %v", err)
	}
	if f.Ascender() <= 0 || f.Descender() >= 0 {
		t.Errorf("implausible vertical metrics: ascender %v descender %v", f.Ascender(), f.Descender())
	}
	if f.CapHeight() <= 0 || f.CapHeight() > f.Ascender() {
		t.Errorf("CapHeight() = %v with ascender %v", f.CapHeight(), f.Ascender())
	}
	if w1, w2 := f.Advance("i"), f.Advance("iiii"); w2 <= w1 {
		t.Errorf("Advance not monotonic: %v then %v", w1, w2)
	}
	if b := f.Bounds("Hello"); b.IsEmpty() || b.MinY() >= 0 {
		t.Errorf("Bounds(Hello) = %v", b)
	}
	if g := f.WithSize(16); g != Face(f) {
		t.Error("WithSize at same size did not return the cached face")
	}
}
