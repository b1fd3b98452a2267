package index

import (
	"strings"

	"github.com/coldbrook/projscout/core"
)

// BuildEmbeddingText assembles the searchable text for a project record.
// Fields are concatenated in a fixed order so the same record always embeds
// to the same vector: Title, Summary, Description, Authors, Topics, Status.
// Empty fields are skipped. Labels give the embedding model field context.
func BuildEmbeddingText(record *core.ProjectRecord) string {
	parts := make([]string, 0, 6)

	if record.Title != "" {
		parts = append(parts, "Title: "+record.Title)
	}
	if record.Summary != "" {
		parts = append(parts, "Summary: "+record.Summary)
	}
	if record.Description != "" {
		parts = append(parts, "Description: "+record.Description)
	}
	if record.Authors != "" {
		parts = append(parts, "Authors: "+record.Authors)
	}
	if record.Topics != "" {
		parts = append(parts, "Topics: "+record.Topics)
	}
	if record.Status != "" {
		parts = append(parts, "Status: "+record.Status)
	}

	return strings.Join(parts, " ")
}
