package view

import (
	"cmp"
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
)

// isLeadingSpace reports whether r is skipped before a number: the Unicode
// space separators plus tab, vertical tab, form feed, the line terminators
// and the byte order mark. U+0085 is not white space here.
func isLeadingSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\ufeff':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// parseNumericPrefix reads the longest decimal number at the start of s,
// after leading white space. It reports whether a finite number was found,
// so "12px" is 12, while "abc", "Infinity" and "1e999" are not numbers.
func parseNumericPrefix(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, isLeadingSpace)

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0, false
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}

	f, err := strconv.ParseFloat(s[:i], 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// sortKey caches the parsed form of one value.
type sortKey struct {
	text    string
	num     float64
	numeric bool
}

func newSortKey(text string) sortKey {
	num, ok := parseNumericPrefix(text)
	return sortKey{text: text, num: num, numeric: ok}
}

// compareKeys orders a and b numerically when both are numbers and by
// collation otherwise.
func compareKeys(coll *collate.Collator, a, b sortKey) int {
	if a.numeric && b.numeric {
		return cmp.Compare(a.num, b.num)
	}
	return coll.CompareString(a.text, b.text)
}
