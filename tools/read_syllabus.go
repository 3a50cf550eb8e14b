package tools

import (
	"encoding/json"

	"github.com/ringel-ai/admitchat/internal/kb"
)

// ReadSyllabusInput is intentionally empty: the syllabus is a single document.
type ReadSyllabusInput struct{}

var ReadSyllabusInputSchema = GenerateSchema[ReadSyllabusInput]()

const syllabusPath = "syllabus.md"

// ReadSyllabusDefinition returns the readSyllabus tool over lib.
func ReadSyllabusDefinition(lib *kb.Library) Definition {
	return Definition{
		Name:        "readSyllabus",
		Description: "Read the full programme syllabus, including structure, curriculum, and specialisations.",
		InputSchema: ReadSyllabusInputSchema,
		Function: func(input json.RawMessage) (string, error) {
			return lib.Read(syllabusPath)
		},
	}
}
