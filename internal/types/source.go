package types

import "github.com/google/uuid"

// CourseSource tags which physical table (and video backend) owns a course.
type CourseSource string

const (
	SourceMux   CourseSource = "mux"
	SourceVimeo CourseSource = "vimeo"
	SourceCF    CourseSource = "cf"
)

func (s CourseSource) Valid() bool {
	switch s {
	case SourceMux, SourceVimeo, SourceCF:
		return true
	}
	return false
}

// CourseRef is the in-memory form of the polymorphic course entity that is
// physically split across the per-backend tables.
type CourseRef struct {
	Source CourseSource `json:"source"`
	ID     uuid.UUID    `json:"id"`
}
