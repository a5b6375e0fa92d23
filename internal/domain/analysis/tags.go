package analysis

import "strings"

// tagVocabulary is the fixed set of concepts scanned for in descriptions.
// Matches are collected in this order, not in order of appearance.
var tagVocabulary = []string{
	"person", "people", "landscape", "nature", "urban", "animal",
	"food", "architecture", "art", "technology", "indoor", "outdoor",
	"portrait", "vehicle", "building", "sky", "water", "plant",
}

const maxTags = 5

// ExtractTags scans the description for vocabulary words
// (case-insensitive substring match) and returns at most maxTags of them.
// Deterministic, no external call.
func ExtractTags(description string) []string {
	lower := strings.ToLower(description)

	tags := make([]string, 0, maxTags)
	for _, tag := range tagVocabulary {
		if strings.Contains(lower, tag) {
			tags = append(tags, tag)
			if len(tags) == maxTags {
				break
			}
		}
	}
	return tags
}
