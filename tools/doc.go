// Package tools defines the assistant's tool contracts and implementations.
//
// Includes:
//   - Definition: name, description, JSON input schema, handler.
//   - GenerateSchema[T](): derive JSON Schema from Go structs.
//   - Knowledge-base readers: readSyllabus, readAssignment,
//     readNotebookLecture, readSlideLecture.
//   - webSearch over the scraped site content in the knowledge base.
package tools
