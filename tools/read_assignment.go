package tools

import (
	"encoding/json"
	"fmt"

	"github.com/ringel-ai/admitchat/internal/kb"
)

type ReadAssignmentInput struct {
	AssignmentNo int `json:"assignment_no" jsonschema_description:"1-based assignment number to read."`
}

var ReadAssignmentInputSchema = GenerateSchema[ReadAssignmentInput]()

// ReadAssignmentDefinition returns the readAssignment tool over lib.
func ReadAssignmentDefinition(lib *kb.Library) Definition {
	return Definition{
		Name:        "readAssignment",
		Description: "Read one assignment brief by its 1-based assignment number.",
		InputSchema: ReadAssignmentInputSchema,
		Function: func(input json.RawMessage) (string, error) {
			var in ReadAssignmentInput
			if err := json.Unmarshal(input, &in); err != nil {
				return "", err
			}
			if in.AssignmentNo <= 0 {
				return "", kb.ToolError{Code: "ERR_BAD_INPUT", Message: "assignment_no must be a positive integer"}
			}
			return lib.Read(fmt.Sprintf("assignments/assignment-%d.md", in.AssignmentNo))
		},
	}
}
