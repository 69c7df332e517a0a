// Package barcode normalizes and validates scanned or typed barcode input
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKC normalization
// 3 Width fold fullwidth digits to ASCII
// 4 Remove zero-width and format characters
// 5 Trim surrounding whitespace
package barcode

import (
	"strings"
	"sync"
	"unicode"

	perr "foodscan/internal/platform/errors"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline
		return transform.Chain(
			norm.NFKC,
			width.Fold,                         // map fullwidth forms to ASCII
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
		)
	},
}

// Normalize returns the cleaned form of raw barcode input.
// Typed input on mobile IMEs can arrive as fullwidth digits; decoders can
// prepend BOMs. Neither should defeat a lookup
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		ns = s
	}
	return strings.TrimSpace(ns)
}

// Validate checks that input carries a usable code after Normalize.
// No length or checksum rules: the product database is the authority on
// what a real barcode is
func Validate(s string) error {
	if Normalize(s) == "" {
		return perr.Validationf("Please enter a barcode number")
	}
	return nil
}
