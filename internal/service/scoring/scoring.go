package scoring

import (
	"strconv"
	"strings"
)

// Threshold is the minimum score a lead needs to be kept.
const Threshold = 5

// MaxScore is the top of the rubric; larger replies are capped to it.
const MaxScore = 10

const promptTemplate = "Score this lead (0-10) for fit as a potential customer based on: Post: %s"

// Prompt renders the fixed rubric prompt for a post.
func Prompt(post string) string {
	return strings.Replace(promptTemplate, "%s", post, 1)
}

// ParseScore converts a model reply into a score in [0, MaxScore]. Only
// replies made of plain ASCII digits are accepted; anything else scores 0.
func ParseScore(reply string) int {
	reply = strings.TrimSpace(reply)
	if !isDigits(reply) {
		return 0
	}
	score, err := strconv.Atoi(reply)
	if err != nil {
		return 0
	}
	return min(score, MaxScore)
}

// Qualifies reports whether a score clears the threshold.
func Qualifies(score int) bool {
	return score >= Threshold
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
