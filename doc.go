// Package tpp renders plain-text presentation sources as sequential
// slides on a character-cell surface.
//
// A source document is a list of pages separated by --newpage lines.
// Each page is a sequence of directives (--heading, --center, ---,
// and so on) and body text. Body text may carry inline markup for
// bold, underline, reverse video and nested colors:
//
//	This is --b bold--/b and --c red colored--/c text.
//
// The engine in this package is backend-agnostic: it tokenizes inline
// markup, tracks style state, wraps styled text to a width, and drives
// a Backend one directive at a time through the Dispatcher and the
// Navigator. Backends live in the term (interactive), txt and latex
// subpackages.
//
// Example:
//
//	doc, err := tpp.LoadFile("talk.tpp", tpp.ExecRunner{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = tpp.Export(tpp.ExportRequest{
//		Document: doc,
//		Backend:  txt.New(os.Stdout, txt.WithWidth(80)),
//	})
package tpp
