package consumer

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sefcontact/engine/internal/domain/shared"
)

// NoteCategory tags a note entry with its purpose
type NoteCategory string

const (
	NoteCategoryContact      NoteCategory = "contact"
	NoteCategoryPayment      NoteCategory = "payment"
	NoteCategoryArrangement  NoteCategory = "arrangement"
	NoteCategoryDispute      NoteCategory = "dispute"
	NoteCategoryGeneral      NoteCategory = "general"
	NoteCategoryCallback     NoteCategory = "callback"
	NoteCategoryStatusChange NoteCategory = "status_change"
)

// ValidNoteCategory reports whether c is a known note category
func ValidNoteCategory(c NoteCategory) bool {
	switch c {
	case NoteCategoryContact, NoteCategoryPayment, NoteCategoryArrangement,
		NoteCategoryDispute, NoteCategoryGeneral, NoteCategoryCallback,
		NoteCategoryStatusChange:
		return true
	}
	return false
}

// Note is one immutable entry in a consumer's append-only audit trail
type Note struct {
	At       time.Time    `json:"at"`
	Category NoteCategory `json:"category"`
	Text     string       `json:"text"`
	AuthorID uuid.UUID    `json:"author_id"`
}

// NewNote creates a note entry stamped with the current time
func NewNote(category NoteCategory, text string, authorID uuid.UUID) (Note, error) {
	if !ValidNoteCategory(category) {
		return Note{}, shared.NewDomainError(shared.CodeValidation, "Unknown note category")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Note{}, shared.NewDomainError(shared.CodeValidation, "Note text cannot be empty")
	}

	return Note{
		At:       time.Now(),
		Category: category,
		Text:     text,
		AuthorID: authorID,
	}, nil
}
