package analysis

import (
	"sort"
	"strings"
)

// Trait names of the derived score vector.
const (
	TraitLeadership            = "leadership"
	TraitTeamwork              = "teamwork"
	TraitStressResistance      = "stress_resistance"
	TraitMotivation            = "motivation"
	TraitCommunication         = "communication"
	TraitAdaptability          = "adaptability"
	TraitReliability           = "reliability"
	TraitCreativity            = "creativity"
	TraitAnalyticalThinking    = "analytical_thinking"
	TraitEmotionalIntelligence = "emotional_intelligence"
)

// baselineScore is the midpoint assigned to every trait absent signal.
const baselineScore = 5

// traitTrigger nudges one trait by a fixed delta when any trigger token is
// present. One declarative table instead of scattered keyword branches.
type traitTrigger struct {
	trait    string
	delta    int
	triggers []string
}

var traitTriggers = []traitTrigger{
	{TraitLeadership, 2, []string{"лидер", "руковод", "управл", "веду", "возглавляю", "leader", "manage", "lead"}},
	{TraitTeamwork, 2, []string{"команд", "коллектив", "совместно", "вместе", "сотруднич", "team", "together", "collaborate"}},
	{TraitStressResistance, 1, []string{"стресс", "давлен", "сложн", "трудн", "справляюсь", "stress", "pressure", "difficult"}},
	{TraitMotivation, 2, []string{"цель", "мечт", "стремл", "развит", "рост", "goal", "dream", "develop", "growth"}},
	{TraitCommunication, 1, []string{"общ", "говори", "объясн", "презент", "коммуник", "communicate", "present", "explain"}},
	{TraitCreativity, 2, []string{"творч", "креатив", "иде", "нестандарт", "creative", "idea", "innovative"}},
	{TraitAnalyticalThinking, 2, []string{"анализ", "логик", "систем", "структур", "план", "analyze", "logic", "system", "plan"}},
}

// allTraits lists every scored trait, including those with no triggers.
var allTraits = []string{
	TraitLeadership, TraitTeamwork, TraitStressResistance, TraitMotivation,
	TraitCommunication, TraitAdaptability, TraitReliability, TraitCreativity,
	TraitAnalyticalThinking, TraitEmotionalIntelligence,
}

// ComputeScores derives the trait score vector from the combined input
// text. Every trait starts at the midpoint; keyword hits move individual
// traits by a fixed delta, clamped to [0,10]. Deterministic heuristic, not
// a model.
func ComputeScores(text string) map[string]int {
	scores := make(map[string]int, len(allTraits))
	for _, trait := range allTraits {
		scores[trait] = baselineScore
	}

	lower := strings.ToLower(text)
	for _, tt := range traitTriggers {
		for _, trigger := range tt.triggers {
			if strings.Contains(lower, trigger) {
				scores[tt.trait] = clampScore(scores[tt.trait] + tt.delta)
				break
			}
		}
	}
	return scores
}

// AverageScore returns the mean trait score rounded to one decimal.
func AverageScore(scores map[string]int) float64 {
	if len(scores) == 0 {
		return 0
	}
	total := 0
	for _, v := range scores {
		total += v
	}
	avg := float64(total) / float64(len(scores))
	return float64(int(avg*10+0.5)) / 10
}

// SortedTraits returns trait names in a stable display order.
func SortedTraits(scores map[string]int) []string {
	traits := make([]string, 0, len(scores))
	for trait := range scores {
		traits = append(traits, trait)
	}
	sort.Strings(traits)
	return traits
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
