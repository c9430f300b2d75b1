// Package typeset converts a stream of markup tokens into fixed-size pages of
// positioned draw instructions, ready for rendering.
//
// The engine performs a single deterministic pass over the token stream: it
// wraps words greedily, detects paragraphs, justifies finished lines, resolves
// font styles across nested markup and paginates text, rules and images. Each
// completed page is handed to a caller-supplied callback before the next page
// is started, so peak memory stays at roughly one in-flight page.
//
// The engine itself never touches fonts, pixels or markup syntax. Those
// concerns are capabilities passed in by the caller:
//
//   - TokenSource produces tags and text spans (see the htmltok subpackage for
//     an adapter over golang.org/x/net/html).
//   - FontMeasurer resolves font handles and measures strings (see typeface).
//   - ImageProvider resolves image references from tag attributes (see
//     imagestore).
//
// A minimal session:
//
//	cfg := typeset.NewConfig(600, 800, "Go", 16)
//	src := htmltok.New(strings.NewReader(doc))
//	err := typeset.Layout(cfg, src, typeface.NewSource(), nil, func(p *typeset.Page) {
//	    // render or persist p
//	})
//
// Pages reference text spans owned by the token source, so the source must
// outlive every page it contributed text to.
package typeset
