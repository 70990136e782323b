package docplan

// Converter turns extracted HTML into Markdown.
type Converter interface {
	// Convert transforms clean content HTML (an Extractor's output)
	// into Markdown, preserving heading hierarchy, code blocks and
	// link targets.
	Convert(html string) (string, error)
}
