// Package markup locates the fixed markers gameshelf reads and rewrites in hand-authored HTML
// fragments, and splices generated markup around them.
//
// Documents are never re-serialised. Parse tokenizes the source with golang.org/x/net/html only to
// learn the byte spans of the interesting elements; every rewrite is a set of byte-range edits
// against the original text, so content outside those spans is preserved byte-for-byte.
//
// Markers:
//
//	<h1>Title</h1>                         heading (first plain-text one wins)
//	<div class="subtitle">...</div>        subtitle
//	<div class="settings-links">...</div>  generated navigation block
//	<a class="back-link" ...>...</a>       generated back-link
//	<div class="ornament">                 insertion anchor
//	<div class="colophon">                 insertion anchor
//	<article class="manuscript"> </article> content boundary
package markup
