package tools

import (
	"encoding/json"
	"strings"

	"github.com/ringel-ai/admitchat/internal/kb"
)

type WebSearchInput struct {
	Query string `json:"query" jsonschema_description:"Search query over the scraped site content and internal documents."`
}

var WebSearchInputSchema = GenerateSchema[WebSearchInput]()

// searchHit is one matching excerpt returned to the model.
type searchHit struct {
	Source  string `json:"source"`
	Excerpt string `json:"excerpt"`
}

const maxSearchHits = 8

// WebSearchDefinition returns the webSearch tool over lib. The deployment is
// self-contained: "web" search runs over the scraped site content mirrored
// into the knowledge base, so answers stay grounded in official material.
func WebSearchDefinition(lib *kb.Library) Definition {
	return Definition{
		Name:        "webSearch",
		Description: "Search the scraped official website content and internal documents for a query; returns matching excerpts with their source documents.",
		InputSchema: WebSearchInputSchema,
		Function: func(input json.RawMessage) (string, error) {
			var in WebSearchInput
			if err := json.Unmarshal(input, &in); err != nil {
				return "", err
			}
			query := strings.TrimSpace(in.Query)
			if query == "" {
				return "", kb.ToolError{Code: "ERR_BAD_INPUT", Message: "query must not be empty"}
			}
			hits, err := search(lib, query)
			if err != nil {
				return "", err
			}
			b, err := json.Marshal(hits)
			if err != nil {
				return "", err
			}
			return string(b), nil
		},
	}
}

// search scans every document for lines containing the query,
// case-insensitively, stopping after maxSearchHits excerpts.
func search(lib *kb.Library, query string) ([]searchHit, error) {
	docs, err := lib.Documents()
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)
	hits := make([]searchHit, 0, maxSearchHits)
	for _, doc := range docs {
		content, err := lib.Read(doc)
		if err != nil {
			// A single unreadable document should not sink the search.
			continue
		}
		for _, line := range strings.Split(content, "\n") {
			if !strings.Contains(strings.ToLower(line), needle) {
				continue
			}
			hits = append(hits, searchHit{Source: doc, Excerpt: strings.TrimSpace(line)})
			if len(hits) >= maxSearchHits {
				return hits, nil
			}
		}
	}
	return hits, nil
}
