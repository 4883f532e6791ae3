// Package data embeds the bundled sample datasets used when no external source is configured.
package data

import "embed"

// Dataset file names inside FS.
const (
	ChecklistFile = "checklist.json"
	MatchesFile   = "matches.json"
)

//go:embed checklist.json matches.json
var FS embed.FS
