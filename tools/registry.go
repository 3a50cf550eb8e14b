package tools

import "github.com/ringel-ai/admitchat/internal/kb"

// Registry returns all tool definitions wired for the assistant over lib.
func Registry(lib *kb.Library) []Definition {
	return []Definition{
		ReadNotebookLectureDefinition(lib),
		ReadSlideLectureDefinition(lib),
		ReadSyllabusDefinition(lib),
		ReadAssignmentDefinition(lib),
		WebSearchDefinition(lib),
	}
}
