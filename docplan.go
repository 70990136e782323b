// Package docplan turns a documentation website into structured local
// markdown artifacts. A language model inspects one rendered page and
// produces an extraction plan (CSS selectors for navigation, content,
// exclusions and title); an execution engine applies the plan across the
// discovered page set; a one-shot self-correction cycle revises the plan
// when execution fails.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., gemini/, rod/, goquery/, sqlite/).
package docplan
