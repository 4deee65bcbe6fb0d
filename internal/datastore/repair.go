package datastore

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// The historical store is text-oriented and lossy: blobs come back
// truncated, with unbalanced brackets, missing commas, or bare keys.
// Repair is an ordered list of independent text-to-text strategies,
// composed until one yields a decodable document. Each strategy is a pure
// function and unit-testable on its own; none of them consults the store.

// RepairStrategy is one named text transformation of the repair chain.
type RepairStrategy struct {
	Name  string
	Apply func(string) string
}

// RepairStrategies is the ordered structural-repair chain applied after
// balanced-object extraction.
var RepairStrategies = []RepairStrategy{
	{Name: "strip_trailing_commas", Apply: StripTrailingCommas},
	{Name: "insert_missing_commas", Apply: InsertMissingCommas},
	{Name: "quote_bare_keys", Apply: QuoteBareKeys},
	{Name: "rebalance_arrays", Apply: RebalanceArrays},
}

// Repair attempts to turn a stored blob into decodable JSON. Already-valid
// input is returned unchanged, making the repair path idempotent. The
// second return value reports whether the result is valid JSON.
func Repair(blob string) (string, bool) {
	if gjson.Valid(blob) {
		return blob, true
	}
	s := ExtractBalancedObject(blob)
	if gjson.Valid(s) {
		return s, true
	}
	for _, strategy := range RepairStrategies {
		s = strategy.Apply(s)
		if gjson.Valid(s) {
			return s, true
		}
	}
	return s, false
}

// ExtractBalancedObject returns the largest balanced {...} substring
// starting at the first opening brace. A truncated document that never
// closes is completed by closing the string (when cut mid-string) and
// appending the missing closers in stack order.
func ExtractBalancedObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return s
	}

	var stack []byte
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return s[start : i+1]
			}
		}
	}

	// Truncated input: close whatever is still open.
	out := s[start:]
	if inString {
		out += `"`
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			out += "}"
		} else {
			out += "]"
		}
	}
	return out
}

var (
	trailingCommaRe   = regexp.MustCompile(`,\s*([}\]])`)
	adjacentBracketRe = regexp.MustCompile(`([}\]])\s*([{\[])`)
	adjacentStringRe  = regexp.MustCompile(`"\s+"`)
	bareKeyRe         = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
)

// StripTrailingCommas removes commas directly preceding a closing bracket
// or brace.
func StripTrailingCommas(s string) string {
	for {
		fixed := trailingCommaRe.ReplaceAllString(s, "$1")
		if fixed == s {
			return fixed
		}
		s = fixed
	}
}

// InsertMissingCommas inserts commas between adjacent closing/opening
// brackets and between adjacent string elements separated only by
// whitespace.
func InsertMissingCommas(s string) string {
	s = adjacentBracketRe.ReplaceAllString(s, "$1,$2")
	return adjacentStringRe.ReplaceAllString(s, `","`)
}

// QuoteBareKeys quotes unquoted object keys.
func QuoteBareKeys(s string) string {
	return bareKeyRe.ReplaceAllString(s, `$1"$2":`)
}

type span struct {
	start, end int
}

// arraySpans returns the [start,end] index pairs of every matched array in
// the document, string-aware so bracket characters inside strings are
// ignored.
func arraySpans(s string) []span {
	var spans []span
	var stack []int
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			stack = append(stack, i)
		case ']':
			if len(stack) > 0 {
				spans = append(spans, span{start: stack[len(stack)-1], end: i})
				stack = stack[:len(stack)-1]
			}
		}
	}
	return spans
}

var (
	leadingArrayCommaRe  = regexp.MustCompile(`\[\s*,`)
	trailingArrayCommaRe = regexp.MustCompile(`,\s*\]`)
	doubleCommaRe        = regexp.MustCompile(`,\s*,`)
)

// RebalanceArrays normalizes comma placement one array at a time rather
// than globally, so a fix inside one array cannot corrupt the content of
// an unrelated one.
func RebalanceArrays(s string) string {
	for {
		changed := false
		spans := arraySpans(s)
		// Innermost arrays close first, so walking the matched spans in
		// order handles nesting before enclosing arrays.
		for _, sp := range spans {
			seg := s[sp.start : sp.end+1]
			fixed := normalizeArrayCommas(seg)
			if fixed != seg {
				s = s[:sp.start] + fixed + s[sp.end+1:]
				changed = true
				break
			}
		}
		if !changed {
			return s
		}
	}
}

func normalizeArrayCommas(seg string) string {
	for {
		fixed := leadingArrayCommaRe.ReplaceAllString(seg, "[")
		fixed = trailingArrayCommaRe.ReplaceAllString(fixed, "]")
		fixed = doubleCommaRe.ReplaceAllString(fixed, ",")
		if fixed == seg {
			return fixed
		}
		seg = fixed
	}
}

// LenientArrayFallback substitutes an empty array for the innermost array
// segment surrounding the given text offset. It is the last repair resort:
// the array's content is sacrificed so the rest of the record survives.
// The boolean reports whether a substitution was made.
func LenientArrayFallback(s string, offset int) (string, bool) {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(s) {
		offset = len(s) - 1
	}
	var innermost *span
	for _, sp := range arraySpans(s) {
		if sp.start <= offset && offset <= sp.end {
			if innermost == nil || sp.start > innermost.start {
				cp := sp
				innermost = &cp
			}
		}
	}
	if innermost == nil {
		return s, false
	}
	return s[:innermost.start] + "[]" + s[innermost.end+1:], true
}
