package subject

import (
	"errors"
	"time"

	"github.com/examhall/backend/internal/id"
)

var (
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrNegativeQuota    = errors.New("questions per test cannot be negative")
	ErrMissingSubjectID = errors.New("part must belong to a subject")
)

// Subject is the top-level content grouping. Final tests are scoped to it.
type Subject struct {
	ID          string
	Title       string
	Description string
	AuthorID    *string // nil when the author account was removed
}

// Part subdivides a Subject's content. Intermediate tests and question
// banks are scoped to a Part.
type Part struct {
	ID          string
	SubjectID   string
	Title       string
	Description string
	Content     string
	Position    int // display order within the subject
	// QuestionsPerTest caps how many questions one test samples from this part.
	QuestionsPerTest int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Link points at supplementary material for a Part.
type Link struct {
	ID     string
	PartID string
	Title  string
	URL    string
}

// Grant subscribes a user to a subject so they may take its tests.
type Grant struct {
	SubjectID string
	UserID    string
}

func New(title, description string, authorID *string) (*Subject, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	return &Subject{
		ID:          id.GenerateID(),
		Title:       title,
		Description: description,
		AuthorID:    authorID,
	}, nil
}

func NewPart(subjectID, title string, position, questionsPerTest int) (*Part, error) {
	if subjectID == "" {
		return nil, ErrMissingSubjectID
	}
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if questionsPerTest < 0 {
		return nil, ErrNegativeQuota
	}
	now := time.Now().UTC()
	return &Part{
		ID:               id.GenerateID(),
		SubjectID:        subjectID,
		Title:            title,
		Position:         position,
		QuestionsPerTest: questionsPerTest,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

func NewLink(partID, title, url string) (*Link, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	return &Link{
		ID:     id.GenerateID(),
		PartID: partID,
		Title:  title,
		URL:    url,
	}, nil
}

// IsAuthor reports whether userID authored the subject.
func (s *Subject) IsAuthor(userID string) bool {
	return s.AuthorID != nil && *s.AuthorID == userID
}
