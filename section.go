package docplan

import (
	"regexp"
	"strings"
)

// Section represents a heading in a markdown document.
type Section struct {
	Level int    `json:"level"`
	Title string `json:"title"`
}

var (
	headingRe   = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)
	codeBlockRe = regexp.MustCompile("(?s)```.*?```")
)

// Outline parses markdown and returns all headings (H1-H6) in document
// order. Fenced code blocks are ignored so # inside code never counts as
// a heading.
func Outline(markdown string) []Section {
	if markdown == "" {
		return nil
	}

	matches := headingRe.FindAllStringSubmatch(codeBlockRe.ReplaceAllString(markdown, ""), -1)
	if len(matches) == 0 {
		return nil
	}

	sections := make([]Section, 0, len(matches))
	for _, match := range matches {
		sections = append(sections, Section{
			Level: len(match[1]),
			Title: strings.TrimSpace(match[2]),
		})
	}
	return sections
}
