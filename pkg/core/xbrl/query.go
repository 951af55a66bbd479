package xbrl

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// =============================================================================
// WHOLE-FRAGMENT QUERY STRATEGY
// Parses the fragment once and evaluates each fact's alias list in priority
// order against the whole document, taking the first alias that yields a
// non-empty textual result. Used as a cross-check against the streaming scan:
// the scan only reads inline-XBRL name attributes, while classic XBRL
// instance documents tag facts as elements (<us-gaap:Revenues>1000</...>).
// The query matches both forms, so it resolves filings the scan cannot.
// =============================================================================

// ResolveQuery resolves facts by querying the parsed fragment per alias.
// An unparseable fragment resolves nothing.
func ResolveQuery(fragment string, table ConceptTable) Resolution {
	res := NewResolution()

	// The document query runs over a recovering HTML parser, which would
	// happily "parse" a truncated fragment. Gate on well-formedness first so
	// a total parse failure means the same thing for both strategies.
	if !wellFormed(fragment) {
		return res
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return res
	}

	for _, fact := range CanonicalFacts {
		for rank, alias := range table[fact] {
			sel := doc.Find(aliasSelector(alias))
			if sel.Length() == 0 {
				continue
			}
			text := strings.TrimSpace(sel.First().Text())
			if text == "" {
				continue
			}
			// First alias with text settles this fact for the strategy,
			// whether or not the text turns out to be numeric.
			if v := ParseNumeric(text); v != nil {
				res.observe(fact, *v, rank)
			}
			break
		}
	}

	return res
}

// aliasSelector matches a concept both ways filings tag it: as an element of
// that name (classic instance document) or as the name attribute of an
// inline-XBRL fact. The namespace colon must be escaped in the type selector.
func aliasSelector(alias string) string {
	element := strings.ReplaceAll(alias, ":", "\\:")
	return fmt.Sprintf("%s, [name=%q]", element, alias)
}

// wellFormed reports whether the fragment tokenizes as XML end to end.
func wellFormed(fragment string) bool {
	dec := xml.NewDecoder(strings.NewReader(fragment))
	dec.Entity = xml.HTMLEntity
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return true
		}
		if err != nil {
			return false
		}
	}
}
