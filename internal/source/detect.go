// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package source

import (
	"strings"

	"github.com/taibuivan/kessen/internal/platform/constants"
	"github.com/taibuivan/kessen/pkg/similarity"
)

// BestDetection scans search candidates for the closest name match to the
// query and packages it as a [Detection] with its confidence. Deciding
// whether the confidence is high enough is the caller's business.
//
// # Rules
//
//   - Comparison is case-insensitive (both sides lowercased).
//   - Candidates whose byte length differs from the query by more than
//     [constants.DetectionLengthBound] are skipped outright; the edit
//     distance could never reach a useful confidence anyway.
//   - The winner must carry an identified series, otherwise nil is
//     returned: a detection without a series answers nothing.
func BestDetection(query string, candidates []CharacterRecord, provider string) *Detection {
	loweredQuery := strings.ToLower(query)

	var (
		best      *CharacterRecord
		bestScore float64
	)

	for i := range candidates {
		candidate := &candidates[i]

		loweredName := strings.ToLower(candidate.Name)
		if lengthGap(loweredQuery, loweredName) > constants.DetectionLengthBound {
			continue
		}

		score := similarity.Score(loweredQuery, loweredName)
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}

	if best == nil || bestScore == 0 || best.Series == nil || best.Series.Name == "" {
		return nil
	}

	return &Detection{
		Character:  best,
		Series:     best.Series,
		Confidence: bestScore,
		Provider:   provider,
	}
}

func lengthGap(a, b string) int {
	if len(a) > len(b) {
		return len(a) - len(b)
	}
	return len(b) - len(a)
}
