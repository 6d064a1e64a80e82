package checkin

import (
	"errors"
	"strings"
)

const MaxNoteLength = 500

var ErrNoteTooLong = errors.New("note exceeds maximum length")

type Note struct {
	value string
}

func NewNote(value string) (Note, error) {
	value = strings.TrimSpace(value)
	if len(value) > MaxNoteLength {
		return Note{}, ErrNoteTooLong
	}
	return Note{value: value}, nil
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}
