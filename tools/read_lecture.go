package tools

import (
	"encoding/json"
	"fmt"

	"github.com/ringel-ai/admitchat/internal/kb"
)

// ReadLectureInput addresses one class session's lecture material.
type ReadLectureInput struct {
	ClassNo int `json:"class_no" jsonschema_description:"1-based class number whose lecture to read."`
}

var ReadLectureInputSchema = GenerateSchema[ReadLectureInput]()

func readLecture(lib *kb.Library, subdir string, input json.RawMessage) (string, error) {
	var in ReadLectureInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}
	if in.ClassNo <= 0 {
		return "", kb.ToolError{Code: "ERR_BAD_INPUT", Message: "class_no must be a positive integer"}
	}
	return lib.Read(fmt.Sprintf("lectures/%s/class-%d.md", subdir, in.ClassNo))
}

// ReadNotebookLectureDefinition returns the readNotebookLecture tool over lib.
func ReadNotebookLectureDefinition(lib *kb.Library) Definition {
	return Definition{
		Name:        "readNotebookLecture",
		Description: "Read the notebook-format lecture for a given class number.",
		InputSchema: ReadLectureInputSchema,
		Function: func(input json.RawMessage) (string, error) {
			return readLecture(lib, "notebooks", input)
		},
	}
}

// ReadSlideLectureDefinition returns the readSlideLecture tool over lib.
func ReadSlideLectureDefinition(lib *kb.Library) Definition {
	return Definition{
		Name:        "readSlideLecture",
		Description: "Read the slide-format lecture for a given class number.",
		InputSchema: ReadLectureInputSchema,
		Function: func(input json.RawMessage) (string, error) {
			return readLecture(lib, "slides", input)
		},
	}
}
