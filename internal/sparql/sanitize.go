// Package sparql repairs raw model completions into structurally valid
// SPARQL query text.
//
// The upstream model output is untrusted free text: it may wrap the query in
// code fences, surround it with prose, drop prefix declarations, or leave
// grouping braces unclosed. Sanitize never rejects its input — it always
// returns a best-effort reconstruction, trading strict correctness for
// availability. Semantic validation belongs to the endpoint that executes
// the query, not to this pass.
package sparql

import (
	"regexp"
	"strings"
)

// DefaultPrefixes is the prefix block prepended when a completion carries no
// prefix declarations at all: the catalog vocabulary (dcat), the metadata
// terms (dct) and the agent namespace (foaf) used across this domain.
const DefaultPrefixes = "PREFIX dcat: <http://www.w3.org/ns/dcat#>\n" +
	"PREFIX dct: <http://purl.org/dc/terms/>\n" +
	"PREFIX foaf: <http://xmlns.com/foaf/0.1/>"

// Extraction and repair rules, in application order. Later rules assume the
// earlier ones already ran; keep the order in Sanitize stable.
var (
	// codeFence matches triple-backtick markers with an optional language tag.
	codeFence = regexp.MustCompile("```[a-zA-Z]*")

	// prefixToLimit captures from the first prefix declaration through the
	// first limit clause, non-greedy from the start.
	prefixToLimit = regexp.MustCompile(`(?is)PREFIX\s.*?\bLIMIT\s+\d+`)

	// selectToLimit is the same extraction anchored on the query-selection
	// keyword, for completions that skipped the prefix block.
	selectToLimit = regexp.MustCompile(`(?is)\bSELECT\b.*?\bLIMIT\s+\d+`)

	prefixKeyword = regexp.MustCompile(`(?i)\bPREFIX\s`)
	selectKeyword = regexp.MustCompile(`(?i)\bSELECT\b`)
	limitClause   = regexp.MustCompile(`(?i)\bLIMIT\s+\d+`)
)

// Sanitize converts a raw completion into bounded, structurally valid query
// text. It is a total function: any input, including garbage, produces some
// output string.
//
// Repair steps, in order:
//  1. Trim surrounding whitespace.
//  2. Strip code-fence markers.
//  3. Extract the PREFIX..LIMIT span; failing that, the SELECT..LIMIT span.
//  4. Discard leading prose before the first PREFIX (or SELECT) keyword.
//  5. Discard trailing prose after the limit clause.
//  6. Prepend DefaultPrefixes when no prefix declaration survived.
//  7. Close unbalanced grouping braces before the limit clause, or at the
//     end when there is none.
//
// Excess closing braces are deliberately not repaired; only missing closers
// are inserted.
func Sanitize(raw string) string {
	out := strings.TrimSpace(raw)
	out = codeFence.ReplaceAllString(out, "")
	out = strings.TrimSpace(out)

	if m := prefixToLimit.FindString(out); m != "" {
		out = m
	} else if m := selectToLimit.FindString(out); m != "" {
		out = m
	}

	out = stripLeadingProse(out)

	if loc := limitClause.FindStringIndex(out); loc != nil {
		out = out[:loc[1]]
	}

	if !prefixKeyword.MatchString(out) {
		out = DefaultPrefixes + "\n" + out
	}

	out = closeOpenBraces(out)

	return strings.TrimSpace(out)
}

// stripLeadingProse discards everything before the first prefix declaration;
// when there is none, before the first selection keyword. Text with neither
// anchor is left untouched.
func stripLeadingProse(s string) string {
	if loc := prefixKeyword.FindStringIndex(s); loc != nil {
		return s[loc[0]:]
	}
	if loc := selectKeyword.FindStringIndex(s); loc != nil {
		return s[loc[0]:]
	}
	return s
}

// closeOpenBraces appends the closing braces missing from s. Insertion goes
// immediately before the limit clause so the bound stays the final token; a
// query without a limit clause gets them at the end.
func closeOpenBraces(s string) string {
	missing := strings.Count(s, "{") - strings.Count(s, "}")
	if missing <= 0 {
		return s
	}

	closers := strings.Repeat("}", missing)

	if loc := limitClause.FindStringIndex(s); loc != nil {
		body := strings.TrimRight(s[:loc[0]], " \t\n")
		return body + " " + closers + " " + s[loc[0]:]
	}

	return strings.TrimRight(s, " \t\n") + " " + closers
}
