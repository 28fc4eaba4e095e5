package score

import (
	"strings"

	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/model"
	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/segment"
)

const (
	minWordsForStructure     = 75
	minSentencesForStructure = 6
)

// Marker lists are matched as substrings of each lower-cased third, so
// "end" also matches "friend" and "time" matches "sometimes".
var (
	settingMarkers    = [...]string{"was", "were", "lived", "once", "upon", "time", "long ago", "far away"}
	problemMarkers    = [...]string{"but", "however", "suddenly", "problem", "couldn't", "wanted", "needed"}
	resolutionMarkers = [...]string{"finally", "solved", "learned", "happy", "together", "end", "from then on"}
)

// CheckNarrativeStructure looks for a setting in the first third, a problem
// in the middle third and a resolution in the last third. A story with a
// setting and a resolution passes even without a problem.
func CheckNarrativeStructure(text string) model.Check {
	if len(segment.Words(text)) < minWordsForStructure {
		return model.Check{Message: "Story too short for proper structure"}
	}

	sentences := segment.Sentences(text)
	if len(sentences) < minSentencesForStructure {
		return model.Check{Message: "Too few sentences for proper structure"}
	}

	first, second := segment.Thirds(len(sentences))
	hasSetting := containsAny(joinLower(sentences[:first]), settingMarkers[:])
	hasProblem := containsAny(joinLower(sentences[first:second]), problemMarkers[:])
	hasResolution := containsAny(joinLower(sentences[second:]), resolutionMarkers[:])

	switch {
	case hasSetting && hasProblem && hasResolution:
		return model.Check{Passed: true, Message: "Complete narrative structure"}
	case hasSetting && hasResolution:
		return model.Check{Passed: true, Message: "Basic narrative structure present"}
	}

	var missing []string
	if !hasSetting {
		missing = append(missing, "clear setting")
	}
	if !hasProblem {
		missing = append(missing, "conflict/problem")
	}
	if !hasResolution {
		missing = append(missing, "resolution")
	}
	return model.Check{Message: "Missing narrative elements: " + strings.Join(missing, ", ")}
}

func joinLower(sentences []string) string {
	return strings.ToLower(strings.Join(sentences, " "))
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
