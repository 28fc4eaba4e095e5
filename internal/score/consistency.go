package score

import (
	"strings"

	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/extract"
	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/model"
	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/segment"
)

const minSentencesForCharacters = 5

// CheckCharacterConsistency flags recurring characters that appear in the
// first and last thirds of the story but vanish from the middle third.
func CheckCharacterConsistency(text string) model.Check {
	characters := extract.ExtractCharacters(text).Recurring(1)
	n := len(segment.Split(text))

	if n < minSentencesForCharacters {
		return model.Check{Passed: true, Message: "Story too short for character analysis"}
	}
	if characters.Len() == 0 {
		return model.Check{Passed: true, Message: "No recurring characters detected"}
	}

	first, second := segment.Thirds(n)

	var abandoned []string
	for _, name := range characters.Names() {
		var begin, middle, end bool
		for _, i := range characters.Positions(name) {
			switch {
			case i < first:
				begin = true
			case i < second:
				middle = true
			default:
				end = true
			}
		}
		if begin && end && !middle {
			abandoned = append(abandoned, name)
		}
	}

	if len(abandoned) > 0 {
		return model.Check{Message: "Characters abandoned in middle: " + strings.Join(abandoned, ", ")}
	}
	return model.Check{Passed: true, Message: "Character consistency maintained"}
}
