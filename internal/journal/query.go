package journal

import "strings"

// Filter is the parsed form of a raw search string: column-name terms and
// row-content terms. Terms are lowercased; both slices keep first-seen
// order but behave as sets.
type Filter struct {
	ColumnTerms []string
	RowTerms    []string
}

func (f Filter) Empty() bool {
	return len(f.ColumnTerms) == 0 && len(f.RowTerms) == 0
}

func (f Filter) HasColumnFilter() bool {
	return len(f.ColumnTerms) > 0
}

// ParseQuery tokenizes a raw search string in three ordered passes. The
// pass order is a hard contract: later passes operate on the residue of
// earlier ones.
//
//  1. Parenthesized column terms "(#work stuff)" — the text may contain
//     spaces and is trimmed.
//  2. Bare column terms "#urgent" — a maximal run of non-whitespace.
//  3. The trimmed residue, split on "|", becomes the row terms.
//
// A blank input produces an empty filter: every column and row visible.
func ParseQuery(raw string) Filter {
	var f Filter
	seenCol := map[string]bool{}

	residue, terms := extractParenTerms(raw)
	for _, term := range terms {
		if term != "" && !seenCol[term] {
			seenCol[term] = true
			f.ColumnTerms = append(f.ColumnTerms, term)
		}
	}

	residue, terms = extractBareTerms(residue)
	for _, term := range terms {
		if term != "" && !seenCol[term] {
			seenCol[term] = true
			f.ColumnTerms = append(f.ColumnTerms, term)
		}
	}

	residue = strings.TrimSpace(residue)
	if residue == "" {
		return f
	}
	seenRow := map[string]bool{}
	for _, piece := range strings.Split(residue, "|") {
		piece = strings.ToLower(strings.TrimSpace(piece))
		if piece == "" || seenRow[piece] {
			continue
		}
		seenRow[piece] = true
		f.RowTerms = append(f.RowTerms, piece)
	}
	return f
}

// extractParenTerms removes every "(#text)" span, returning the residue
// and the trimmed, lowercased terms. An unclosed "(#" is left in place for
// the later passes.
func extractParenTerms(raw string) (string, []string) {
	var residue strings.Builder
	var terms []string
	for i := 0; i < len(raw); {
		if raw[i] == '(' && i+1 < len(raw) && raw[i+1] == '#' {
			if end := strings.IndexByte(raw[i+2:], ')'); end >= 0 {
				term := strings.ToLower(strings.TrimSpace(raw[i+2 : i+2+end]))
				terms = append(terms, term)
				i += end + 3
				continue
			}
		}
		residue.WriteByte(raw[i])
		i++
	}
	return residue.String(), terms
}

// extractBareTerms removes every "#token" run. A lone "#" has no token and
// stays in the residue.
func extractBareTerms(raw string) (string, []string) {
	var residue strings.Builder
	var terms []string
	for i := 0; i < len(raw); {
		if raw[i] == '#' {
			j := i + 1
			for j < len(raw) && !isSpace(raw[j]) {
				j++
			}
			if j > i+1 {
				terms = append(terms, strings.ToLower(raw[i+1:j]))
				i = j
				continue
			}
		}
		residue.WriteByte(raw[i])
		i++
	}
	return residue.String(), terms
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
