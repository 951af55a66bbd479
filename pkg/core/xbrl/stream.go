package xbrl

import (
	"encoding/xml"
	"io"
	"strings"
)

// =============================================================================
// STREAMING STRATEGY
// Single forward pass over the fragment's token stream. Inline XBRL tags
// numeric facts as <ix:nonFraction name="us-gaap:...">value</ix:nonFraction>;
// each completed element is inspected and nothing else is retained, so memory
// stays proportional to nesting depth rather than document size. Filings run
// to hundreds of megabytes, which is why this strategy exists at all.
// =============================================================================

// nonFractionLocal is the local element name inline XBRL uses for numeric
// facts. Fractions and non-numeric facts use different elements and are
// ignored.
const nonFractionLocal = "nonFraction"

// ResolveStream resolves facts with a single pass over the fragment.
// A fragment too malformed to tokenize resolves nothing: the caller treats a
// total parse failure exactly like an empty document.
func ResolveStream(fragment string, table ConceptTable) Resolution {
	index := table.invert()
	res := NewResolution()

	dec := xml.NewDecoder(strings.NewReader(fragment))
	// Filings embed HTML entities; anything structurally broken beyond that
	// still fails the strict parse and resolves to nothing.
	dec.Entity = xml.HTMLEntity
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return NewResolution()
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != nonFractionLocal {
			continue
		}

		ref, ok := index[attrValue(se, "name")]
		if !ok {
			// Not a target concept: discard the subtree without buffering it.
			if err := dec.Skip(); err != nil {
				return NewResolution()
			}
			continue
		}

		text, err := collectText(dec)
		if err != nil {
			return NewResolution()
		}
		if v := ParseNumeric(text); v != nil {
			res.observe(ref.fact, *v, ref.rank)
		}
	}

	return res
}

// attrValue returns the value of the named attribute, ignoring namespace
// prefixes. Inline XBRL attributes are unprefixed in practice.
func attrValue(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// collectText consumes tokens up to the element's matching end tag and
// returns the concatenated character data. Filers sometimes nest formatting
// elements inside a nonFraction, so text is gathered across the whole
// subtree; the tokens themselves are discarded as they are read.
func collectText(dec *xml.Decoder) (string, error) {
	var b strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			b.Write(t)
		}
	}
	return b.String(), nil
}
