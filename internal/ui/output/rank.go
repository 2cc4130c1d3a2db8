// Package output implements the cell output pipeline: deriving MIME
// representations from raw output records, ranking them by richness, and
// building one renderer per representation on demand.
package output

import (
	"path"
	"strings"
)

// mimeOrder is the preference table, richest first. Rank is the index of
// the first pattern a MIME type matches.
var mimeOrder = []string{
	"application/vnd.jupyter.widget-view+json",
	"image/*",
	"application/pdf",
	"text/latex",
	"text/markdown",
	"text/x-markdown",
	"text/x-python-traceback",
	"stream/stderr",
	"text/html",
	"text/*",
	"*",
}

// rankUnmatched is the sentinel for types matching no pattern. The final
// wildcard makes it unreachable in practice; it guards table edits.
const rankUnmatched = 999

// Rank scores the richness of a MIME representation; lower is richer.
// Plain text carrying ANSI escapes is promoted two positions, HTML with
// no tag-opening character is demoted two.
func Rank(mime, data string) int {
	for i, pattern := range mimeOrder {
		rank := i
		if mime == "text/plain" && strings.Contains(data, "\x1b[") {
			rank -= 2
		}
		if mime == "text/html" && !strings.Contains(data, "<") {
			rank += 2
		}
		if MatchMime(pattern, mime) {
			return rank
		}
	}
	return rankUnmatched
}

// MatchMime reports whether mime matches a glob pattern using
// trailing-segment semantics: a pattern with fewer segments than the MIME
// type matches against its final segments, so "*" matches everything and
// "image/*" matches "image/png".
func MatchMime(pattern, mime string) bool {
	pp := strings.Split(pattern, "/")
	mm := strings.Split(mime, "/")
	if len(pp) > len(mm) {
		return false
	}
	mm = mm[len(mm)-len(pp):]
	for i := range pp {
		ok, err := path.Match(pp[i], mm[i])
		if err != nil || !ok {
			return false
		}
	}
	return true
}
