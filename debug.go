package typeset

import (
	"encoding/json"
	"io"
	"os"
)

// debugInstr is the JSON shadow of a DrawInstr: text spans become strings and
// the opaque font handle collapses to its descriptor.
type debugInstr struct {
	Kind  string     `json:"kind"`
	Text  string     `json:"text,omitempty"`
	Font  *debugFont `json:"font,omitempty"`
	Image string     `json:"image,omitempty"`
	BBox  Rect       `json:"bbox"`
}

type debugFont struct {
	Name  string  `json:"name"`
	Size  float64 `json:"size"`
	Style string  `json:"style"`
}

type debugPage struct {
	Instrs []debugInstr `json:"instrs"`
}

// EncodeDebugJSON writes the pages as indented JSON, for debugging or
// visualization. Text spans are copied into strings, so the output does not
// pin the token source.
func EncodeDebugJSON(w io.Writer, pages []*Page) error {
	out := make([]debugPage, 0, len(pages))
	for _, p := range pages {
		dp := debugPage{Instrs: make([]debugInstr, 0, len(p.Instrs))}
		for _, in := range p.Instrs {
			di := debugInstr{Kind: in.Kind.String(), BBox: in.BBox}
			switch in.Kind {
			case InstrSetFont:
				if in.Font != nil {
					di.Font = &debugFont{Name: in.Font.Name, Size: in.Font.Size, Style: in.Font.Style.String()}
				}
			case InstrText:
				di.Text = string(in.Text)
			case InstrImage:
				if in.Image != nil {
					di.Image = in.Image.ID
				}
			}
			dp.Instrs = append(dp.Instrs, di)
		}
		out = append(out, dp)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WriteDebugJSON writes the debug JSON for the pages to a file.
func WriteDebugJSON(pages []*Page, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeDebugJSON(f, pages); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
