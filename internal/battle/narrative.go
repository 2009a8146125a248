// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package battle

import (
	"fmt"
	"strings"
	"unicode"
)

// Phase is one beat of the battle narrative.
type Phase struct {
	Title  string   `json:"title"`
	Events []string `json:"events"`
}

// VictoryFactor is one qualitative reason the winner won. Each factor only
// appears when its triggering condition held.
type VictoryFactor struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// buildPhases tells the battle in four beats: the arena test, the
// runner-up's early edge, the winner's turnaround, and the finishing move.
// Fighters must already be ranked.
func buildPhases(fighters []*Fighter, environment Environment) []Phase {
	winner := fighters[0]

	phases := []Phase{{
		Title: "Initial Engagement",
		Events: []string{fmt.Sprintf("The battle begins in %s, testing each fighter's %s and %s.",
			environment.Name, attributeLabel(environment.Favors[0]), attributeLabel(environment.Favors[1]))},
	}}

	if len(fighters) > 1 {
		runnerUp := fighters[1]
		topAttribute := sortedByValue(runnerUp.Attributes, true)[0]
		phases = append(phases, Phase{
			Title: "Tactical Adjustments",
			Events: []string{fmt.Sprintf("%s initially gains ground using %s (%d).",
				runnerUp.Name, attributeLabel(topAttribute), runnerUp.Attributes[topAttribute])},
		})
	}

	winnerTop := sortedByValue(winner.Attributes, true)[0]
	powerShift := Phase{
		Title: "Power Shift",
		Events: []string{fmt.Sprintf("%s turns the tide through superior %s (%d).",
			winner.Name, attributeLabel(winnerTop), winner.Attributes[winnerTop])},
	}
	for _, favored := range environment.Favors {
		if favored == winnerTop {
			powerShift.Events = append(powerShift.Events, fmt.Sprintf("The %s environment amplifies %s's %s advantage.",
				environment.Name, winner.Name, attributeLabel(winnerTop)))
			break
		}
	}
	phases = append(phases, powerShift)

	ultimate := ultimateOf(winner.Techniques)
	moveKind := "their ultimate technique"
	if ultimate.Canonical {
		moveKind = "their canonical ability"
	}
	phases = append(phases, Phase{
		Title: "Decisive Moment",
		Events: []string{
			fmt.Sprintf("%s unleashes %s: %s (Power: %d).", winner.Name, moveKind, ultimate.Name, ultimate.Power),
			fmt.Sprintf("This proves decisive, securing victory for %s!", winner.Name),
		},
	})

	return phases
}

// buildVictoryFactors assembles the conditional reasons behind the win.
// Fighters must already be ranked.
func buildVictoryFactors(fighters []*Fighter, environment Environment) []VictoryFactor {
	winner := fighters[0]
	ranked := sortedByValue(winner.Attributes, true)

	var factors []VictoryFactor

	totalPower := 0
	for _, fighter := range fighters {
		totalPower += fighter.PowerLevel
	}
	averagePower := float64(totalPower) / float64(len(fighters))
	if float64(winner.PowerLevel) > averagePower+5 {
		factors = append(factors, VictoryFactor{
			Kind: "power",
			Text: fmt.Sprintf("Superior Power Level: %s's overall power (%d) exceeds the average (%d) by %d points.",
				winner.Name, winner.PowerLevel, int(averagePower), winner.PowerLevel-int(averagePower)),
		})
	}

	factors = append(factors, VictoryFactor{
		Kind: "top_attribute",
		Text: fmt.Sprintf("Exceptional %s: At %d points, %s's greatest strength gives them a significant edge.",
			attributeLabel(ranked[0]), winner.Attributes[ranked[0]], winner.Name),
	})

	if winner.Attributes[ranked[1]] > 85 {
		factors = append(factors, VictoryFactor{
			Kind: "second_attribute",
			Text: fmt.Sprintf("Superior %s: With %d points in this attribute, %s maintains versatility in combat.",
				attributeLabel(ranked[1]), winner.Attributes[ranked[1]], winner.Name),
		})
	}

	for _, favored := range environment.Favors {
		if winner.Attributes[favored] > 85 {
			factors = append(factors, VictoryFactor{
				Kind: "environment",
				Text: fmt.Sprintf("Battlefield Advantage: The %s environment synergizes with %s's %s, amplifying their effectiveness.",
					environment.Name, winner.Name, attributeLabel(favored)),
			})
			break
		}
	}

	if ultimate := ultimateOf(winner.Techniques); ultimate.Power > 90 {
		moveKind := "ultimate technique"
		if ultimate.Canonical {
			moveKind = "canonical ability"
		}
		factors = append(factors, VictoryFactor{
			Kind: "ultimate",
			Text: fmt.Sprintf("Devastating Ultimate Technique: %s's %s %q (Power: %d) delivers exceptional damage.",
				winner.Name, moveKind, ultimate.Name, ultimate.Power),
		})
	}

	// Counter matchups are only called out in duels.
	if len(fighters) == 2 {
		opponent := fighters[1]
		myBest := ranked[:2]
		theirWorst := sortedByValue(opponent.Attributes, false)[:2]

		for _, mine := range myBest {
			for _, theirs := range theirWorst {
				if mine == counterTable[theirs] {
					factors = append(factors, VictoryFactor{
						Kind: "matchup",
						Text: fmt.Sprintf("Favorable Matchup: %s's %s (%d) directly counters %s's weakness in %s (%d).",
							winner.Name, attributeLabel(mine), winner.Attributes[mine],
							opponent.Name, attributeLabel(theirs), opponent.Attributes[theirs]),
					})
				}
			}
		}
	}

	lowest, highest := attributeExtremes(winner.Attributes)
	if balance := 100 - (highest - lowest); balance > 70 {
		factors = append(factors, VictoryFactor{
			Kind: "balance",
			Text: fmt.Sprintf("Well-Balanced Fighter: %s's attributes are evenly distributed (Balance Score: %d), making them adaptable to various situations.",
				winner.Name, balance),
		})
	}

	return factors
}

// attributeLabel turns a camelCase attribute name into prose
// ("specialAbility" -> "special ability").
func attributeLabel(attribute Attribute) string {
	var builder strings.Builder
	for _, r := range string(attribute) {
		if unicode.IsUpper(r) {
			builder.WriteByte(' ')
			r = unicode.ToLower(r)
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
