package domain

import (
	"strings"
	"unicode/utf8"
)

type Level string

const (
	LevelPoor      Level = "poor"
	LevelFair      Level = "fair"
	LevelGood      Level = "good"
	LevelExcellent Level = "excellent"
)

type Breakdown struct {
	Role       int `json:"role"`
	Task       int `json:"task"`
	Context    int `json:"context"`
	Output     int `json:"output"`
	Techniques int `json:"techniques"`
}

func (b Breakdown) Total() int {
	return b.Role + b.Task + b.Context + b.Output + b.Techniques
}

type Quality struct {
	Score       int       `json:"score"`
	Level       Level     `json:"level"`
	Breakdown   Breakdown `json:"breakdown"`
	Suggestions []string  `json:"suggestions"`
}

// threshold awards points when a trimmed length reaches min.
type threshold struct {
	min    int
	points int
}

// Tiers are ordered from most to least demanding; a non-empty field always
// earns the last tier.
var (
	roleTiers    = []threshold{{50, 20}, {20, 15}, {10, 10}, {1, 5}}
	taskTiers    = []threshold{{60, 30}, {30, 20}, {10, 15}, {1, 5}}
	contextTiers = []threshold{{40, 15}, {20, 10}, {1, 5}}
	outputTiers  = []threshold{{30, 15}, {15, 10}, {1, 5}}
)

const (
	suggestRole       = "Add a role to give the model a persona and area of expertise."
	suggestTask       = "Describe the task: it is the core of the prompt."
	suggestContext    = "Add context such as background, constraints or audience."
	suggestOutput     = "Specify the output format you expect."
	suggestTechniques = "Select at least one technique to structure the model's reasoning."
)

// CalculateQuality scores a configuration from 0 to 100. Longer trimmed
// fields never score lower than shorter ones.
func CalculateQuality(data Data, techniqueCount int) Quality {
	roleLen := trimmedLen(data.Role)
	taskLen := trimmedLen(data.Task)
	contextLen := trimmedLen(data.Context)
	outputLen := trimmedLen(data.Output)

	breakdown := Breakdown{
		Role:       score(roleLen, roleTiers),
		Task:       score(taskLen, taskTiers),
		Context:    score(contextLen, contextTiers),
		Output:     score(outputLen, outputTiers),
		Techniques: techniqueScore(techniqueCount),
	}

	suggestions := []string{}
	if roleLen == 0 {
		suggestions = append(suggestions, suggestRole)
	}
	if taskLen == 0 {
		suggestions = append(suggestions, suggestTask)
	}
	if contextLen == 0 {
		suggestions = append(suggestions, suggestContext)
	}
	if outputLen == 0 {
		suggestions = append(suggestions, suggestOutput)
	}
	if techniqueCount <= 0 {
		suggestions = append(suggestions, suggestTechniques)
	}

	total := breakdown.Total()
	return Quality{
		Score:       total,
		Level:       LevelFor(total),
		Breakdown:   breakdown,
		Suggestions: suggestions,
	}
}

func LevelFor(score int) Level {
	switch {
	case score >= 80:
		return LevelExcellent
	case score >= 50:
		return LevelGood
	case score >= 30:
		return LevelFair
	default:
		return LevelPoor
	}
}

func score(length int, tiers []threshold) int {
	for _, tier := range tiers {
		if length >= tier.min {
			return tier.points
		}
	}
	return 0
}

func techniqueScore(count int) int {
	switch {
	case count >= 3:
		return 20
	case count == 2:
		return 15
	case count == 1:
		return 10
	default:
		return 0
	}
}

func trimmedLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}
