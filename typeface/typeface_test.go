package typeface_test

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/lvillar/typeset"
	"github.com/lvillar/typeset/typeface"
)

func TestResolveGoFamily(t *testing.T) {
	s := typeface.NewSource()

	regular, err := s.ResolveFont("Go", 16, typeset.StyleRegular)
	if err != nil {
		t.Fatalf("ResolveFont: %v", err)
	}
	bold, err := s.ResolveFont("Go", 16, typeset.StyleBold)
	if err != nil {
		t.Fatalf("ResolveFont bold: %v", err)
	}
	if regular.Face == bold.Face {
		t.Error("bold and regular share a face")
	}

	// family lookup is case-insensitive
	if _, err := s.ResolveFont("go", 16, typeset.StyleItalic); err != nil {
		t.Errorf("ResolveFont lowercase: %v", err)
	}
}

func TestUnderlineKeepsBaseFace(t *testing.T) {
	s := typeface.NewSource()
	regular, _ := s.ResolveFont("Go", 16, typeset.StyleRegular)
	underline, err := s.ResolveFont("Go", 16, typeset.StyleUnderline)
	if err != nil {
		t.Fatalf("ResolveFont underline: %v", err)
	}
	if regular.Face != underline.Face {
		t.Error("underline changed the measuring face; it is a stroke decoration")
	}
	if underline.Style != typeset.StyleUnderline {
		t.Errorf("handle style = %v, want underline", underline.Style)
	}
}

func TestMeasureText(t *testing.T) {
	s := typeface.NewSource()
	f, err := s.ResolveFont("Go", 16, typeset.StyleRegular)
	if err != nil {
		t.Fatalf("ResolveFont: %v", err)
	}
	short := s.MeasureText(f, "He")
	long := s.MeasureText(f, "Hello")
	if short.W <= 0 || long.W <= short.W {
		t.Errorf("widths not increasing: %g, %g", short.W, long.W)
	}
	if lh := s.LineHeight(f); lh <= 0 {
		t.Errorf("line height = %g, want > 0", lh)
	}
}

func TestUnknownFamily(t *testing.T) {
	s := typeface.NewSource()
	if _, err := s.ResolveFont("Comic Sans", 16, typeset.StyleRegular); err == nil {
		t.Error("unknown family resolved")
	}
}

func TestRegisterTTF(t *testing.T) {
	s := typeface.NewSource()
	if err := s.RegisterTTF("Custom", typeface.TTF{Regular: goregular.TTF}); err != nil {
		t.Fatalf("RegisterTTF: %v", err)
	}
	// missing variants fall back to regular
	f, err := s.ResolveFont("Custom", 12, typeset.StyleBold)
	if err != nil {
		t.Fatalf("ResolveFont: %v", err)
	}
	if w := s.MeasureText(f, "x").W; w <= 0 {
		t.Errorf("measured width = %g, want > 0", w)
	}

	if err := s.RegisterTTF("broken", typeface.TTF{Regular: []byte("not a font")}); err == nil {
		t.Error("RegisterTTF accepted garbage bytes")
	}
	if err := s.RegisterTTF("empty", typeface.TTF{}); err == nil {
		t.Error("RegisterTTF accepted a family with no regular variant")
	}
}
