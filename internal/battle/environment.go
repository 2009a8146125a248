// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package battle

// Environment is one battlefield from the fixed catalog. Each arena favors
// exactly two attributes.
type Environment struct {
	Name   string      `json:"name"`
	Effect string      `json:"effect"`
	Favors []Attribute `json:"favors"`
}

var environments = []Environment{
	{Name: "Shattered Cityscape", Effect: "favors Agility & Tactical Thinking", Favors: []Attribute{AttrSpeed, AttrIntelligence}},
	{Name: "Dimensional Rift", Effect: "favors Special Abilities & Adaptability", Favors: []Attribute{AttrSpecialAbility, AttrAdaptability}},
	{Name: "Sky Arena", Effect: "favors Flight/Speed & Ranged Attacks", Favors: []Attribute{AttrSpeed, AttrTechnique}},
	{Name: "Ancient Temple Ruins", Effect: "favors Technique & Defense", Favors: []Attribute{AttrTechnique, AttrDefense}},
	{Name: "Molten Battlefield", Effect: "testing Endurance & Raw Power", Favors: []Attribute{AttrEndurance, AttrStrength}},
	{Name: "Mystic Forest", Effect: "favors Adaptability & Special Abilities", Favors: []Attribute{AttrAdaptability, AttrSpecialAbility}},
	{Name: "Underwater Cavern", Effect: "tests Endurance & Adaptability", Favors: []Attribute{AttrEndurance, AttrAdaptability}},
	{Name: "Astral Plane", Effect: "amplifies Intelligence & Special Abilities", Favors: []Attribute{AttrIntelligence, AttrSpecialAbility}},
	{Name: "Colosseum Arena", Effect: "rewards Technique & Experience", Favors: []Attribute{AttrTechnique, AttrExperience}},
	{Name: "Frozen Tundra", Effect: "challenges Endurance & Willpower", Favors: []Attribute{AttrEndurance, AttrWillpower}},
}

// selectEnvironment picks the fairest arena: the one where the gap between
// the most and least advantaged fighter is smallest. A strict comparison
// keeps the earliest catalog entry on ties.
func selectEnvironment(fighters []*Fighter) Environment {
	selected := environments[0]
	lowestGap := -1

	for _, environment := range environments {
		maxSum, minSum := 0, 0

		for i, fighter := range fighters {
			sum := 0
			for _, attribute := range environment.Favors {
				sum += fighter.Attributes[attribute]
			}
			if i == 0 || sum > maxSum {
				maxSum = sum
			}
			if i == 0 || sum < minSum {
				minSum = sum
			}
		}

		gap := maxSum - minSum
		if lowestGap < 0 || gap < lowestGap {
			lowestGap = gap
			selected = environment
		}
	}

	return selected
}
