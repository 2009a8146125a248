// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package similarity scores how closely two strings resemble each other.
//
// # Usage
//
// The score drives fuzzy name matching: correlating a typed character name
// against upstream search candidates, and ranking detection guesses. Inputs
// are compared as-is; callers that want case-insensitive matching must
// lowercase both sides first.
package similarity

// Score returns a normalized edit-distance similarity in [0, 1].
//
// # Properties
//
//   - Score(s, s) == 1 for every s, including the empty string.
//   - Score(a, b) == Score(b, a).
//   - Score("", b) == 0 when b is non-empty.
//
// The value is 1 - levenshtein(a, b) / max(len(a), len(b)).
func Score(a, b string) float64 {
	if a == b {
		return 1.0
	}

	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(levenshtein(a, b))/float64(maxLen)
}

// levenshtein computes the edit distance between two strings using the
// two-row variant of the dynamic programming matrix.
func levenshtein(a, b string) int {
	if a == "" {
		return len(b)
	}
	if b == "" {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
