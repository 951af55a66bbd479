package xbrl

import (
	"regexp"
	"strings"
)

// =============================================================================
// DOCUMENT NORMALIZER
// SEC full-text submissions concatenate several documents; the inline XBRL
// block is delimited by <XBRL>...</XBRL> and each embedded document carries
// its own <?xml?> declaration, which breaks parsing once concatenated. The
// normalizer isolates the block, strips declarations, and wraps the result in
// a synthetic root so a parser always receives a single well-formed element.
// =============================================================================

const (
	xbrlOpenMarker  = "<XBRL"
	xbrlCloseMarker = "</XBRL>"

	// syntheticRoot wraps the captured block so parsing cannot fail for lack
	// of a document root.
	syntheticRoot = "xbrl-root"
)

var (
	processingInstruction = regexp.MustCompile(`<\?[^>]*\?>`)
	doctypeDeclaration    = regexp.MustCompile(`(?is)<!DOCTYPE[^>]*>`)
)

// ExtractFragment extracts the XBRL block from a raw filing and returns a
// parseable fragment. It never fails: if no <XBRL> marker is present the
// entire document is the capture, and an empty capture is still wrapped.
func ExtractFragment(raw string) string {
	captured := captureBlock(raw)
	captured = processingInstruction.ReplaceAllString(captured, "")
	captured = doctypeDeclaration.ReplaceAllString(captured, "")
	captured = strings.TrimSpace(captured)

	return "<" + syntheticRoot + ">" + captured + "</" + syntheticRoot + ">"
}

// captureBlock scans line by line for the XBRL block, capturing from the
// opening marker through the closing marker inclusive.
func captureBlock(raw string) string {
	var b strings.Builder
	inside := false
	found := false

	for _, line := range strings.SplitAfter(raw, "\n") {
		if !inside && strings.Contains(line, xbrlOpenMarker) {
			inside = true
			found = true
		}
		if inside {
			b.WriteString(line)
		}
		if inside && strings.Contains(line, xbrlCloseMarker) {
			break
		}
	}

	if !found {
		return raw
	}
	return b.String()
}
