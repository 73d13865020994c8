package extract

import "strings"

// stripMarkup removes whitespace and any decorative material before the first
// structural opener. Fence markers and prose after the payload are left in
// place; the boundary scanner cuts at the matching closer, so trailing
// material never reaches the parser. Stripping already-clean payload text is
// a no-op.
func stripMarkup(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	idx := strings.IndexAny(trimmed, "{[")
	if idx < 0 {
		return "", ErrNoPayload
	}
	return trimmed[idx:], nil
}
