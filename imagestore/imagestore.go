// Package imagestore implements typeset.ImageProvider over encoded image
// files, resolving identifiers (typically img src attributes) to intrinsic
// pixel dimensions without a full decode.
//
// Importing this package registers decoders for PNG, JPEG, GIF, BMP, TIFF
// and WebP with the image package.
package imagestore

import (
	"bytes"
	"image"
	"io/fs"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/lvillar/typeset"
)

// Store resolves image identifiers against an optional fs.FS plus any
// entries added with Add. Resolution results, including failures, are cached
// so each identifier is decoded at most once.
type Store struct {
	fsys fs.FS
	mem  map[string][]byte
	refs map[string]*typeset.ImageRef
}

// New creates a Store reading identifiers as paths in fsys. fsys may be nil
// for a purely in-memory store.
func New(fsys fs.FS) *Store {
	return &Store{
		fsys: fsys,
		mem:  make(map[string][]byte),
		refs: make(map[string]*typeset.ImageRef),
	}
}

// Add registers encoded image bytes under an identifier. In-memory entries
// take precedence over the file system.
func (s *Store) Add(id string, data []byte) {
	s.mem[id] = data
	delete(s.refs, id)
}

// Image implements typeset.ImageProvider. Unknown identifiers and bytes that
// fail to decode report ok=false; the layout engine then skips the tag.
func (s *Store) Image(id string) (*typeset.ImageRef, bool) {
	if ref, ok := s.refs[id]; ok {
		return ref, ref != nil
	}
	data, ok := s.mem[id]
	if !ok && s.fsys != nil {
		if b, err := fs.ReadFile(s.fsys, id); err == nil {
			data = b
			ok = true
		}
	}
	if !ok {
		s.refs[id] = nil
		return nil, false
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		s.refs[id] = nil
		return nil, false
	}
	ref := &typeset.ImageRef{
		ID:     id,
		Data:   data,
		Width:  float64(cfg.Width),
		Height: float64(cfg.Height),
	}
	s.refs[id] = ref
	return ref, true
}
