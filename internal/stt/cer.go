package stt

import (
	"strings"
	"unicode"
)

// CERResult holds detailed character error rate results. Characters rather
// than words are compared because Japanese text has no word boundaries.
type CERResult struct {
	CER           float64 // Character Error Rate (0.0 = perfect, 1.0+ = very bad)
	Substitutions int     // Characters replaced with different characters
	Insertions    int     // Extra characters in hypothesis
	Deletions     int     // Characters missing from hypothesis
	RefChars      int     // Total characters in reference
}

// ComputeCER calculates the character error rate between reference and
// hypothesis text. Both strings are normalized: whitespace and punctuation
// removed, latin letters lowercased.
// CER = (Substitutions + Insertions + Deletions) / ReferenceCharCount.
func ComputeCER(reference, hypothesis string) CERResult {
	ref := normalizeChars(reference)
	hyp := normalizeChars(hypothesis)

	n := len(ref)
	if n == 0 {
		return CERResult{}
	}

	m := len(hyp)

	// DP table for minimum edit distance.
	d := make([][]int, n+1)
	for i := range d {
		d[i] = make([]int, m+1)
		d[i][0] = i // deleting all ref chars
	}
	for j := 0; j <= m; j++ {
		d[0][j] = j // inserting all hyp chars
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if ref[i-1] == hyp[j-1] {
				d[i][j] = d[i-1][j-1]
			} else {
				sub := d[i-1][j-1] + 1
				del := d[i-1][j] + 1
				ins := d[i][j-1] + 1
				d[i][j] = min(sub, min(del, ins))
			}
		}
	}

	// Backtrace to count substitutions, insertions, deletions.
	var subs, ins, dels int
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && ref[i-1] == hyp[j-1]:
			i--
			j--
		case i > 0 && j > 0 && d[i][j] == d[i-1][j-1]+1:
			subs++
			i--
			j--
		case i > 0 && d[i][j] == d[i-1][j]+1:
			dels++
			i--
		default:
			ins++
			j--
		}
	}

	return CERResult{
		CER:           float64(subs+ins+dels) / float64(n),
		Substitutions: subs,
		Insertions:    ins,
		Deletions:     dels,
		RefChars:      n,
	}
}

// normalizeChars strips whitespace and punctuation and lowercases latin
// letters, returning the remaining runes.
func normalizeChars(s string) []rune {
	var out []rune
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}
