// Package normalisers converts raw document bytes into plain
// indexable text. The registry dispatches on MIME type to the
// highest-priority match: markdown strips formatting syntax, html
// extracts visible text from markup, and plaintext passes bytes
// through as the catch-all.
package normalisers
