package question

import (
	"errors"
	"fmt"
	"strings"

	"github.com/examhall/backend/internal/id"
)

const (
	MinDifficulty     = 1
	MaxDifficulty     = 5
	DefaultDifficulty = 1

	// correctMarker prefixes the correct option in shorthand answer input.
	correctMarker = "!"
)

var (
	ErrEmptyTitle        = errors.New("question title cannot be empty")
	ErrEmptyAnswer       = errors.New("answer title cannot be empty")
	ErrDifficultyRange   = fmt.Errorf("difficulty must be between %d and %d", MinDifficulty, MaxDifficulty)
	ErrMultipleCorrect   = errors.New("a question can have at most one correct answer")
	ErrConflictingInputs = errors.New("use either answers or answers_input, not both")
)

// Question is a bank entry. Difficulty weights its contribution to a score.
type Question struct {
	ID         string
	PartID     *string // nil for unattached questions
	Title      string
	Difficulty int
	Answers    []Answer
}

// Answer is one ground-truth option of a Question.
type Answer struct {
	ID         string
	QuestionID string
	Title      string
	Correct    bool
	Position   int // authoring order, 1-based
}

// AnswerInput is an option as supplied by an author.
type AnswerInput struct {
	Title   string
	Correct bool
}

// New creates a question. A zero difficulty means DefaultDifficulty.
func New(title string, difficulty int, partID *string) (*Question, error) {
	q := &Question{
		ID:      id.GenerateID(),
		PartID:  partID,
		Answers: []Answer{},
	}
	if err := q.Update(title, difficulty, partID); err != nil {
		return nil, err
	}
	return q, nil
}

// Update changes the question's own fields, keeping its answers.
func (q *Question) Update(title string, difficulty int, partID *string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if difficulty == 0 {
		difficulty = DefaultDifficulty
	}
	if difficulty < MinDifficulty || difficulty > MaxDifficulty {
		return ErrDifficultyRange
	}
	q.Title = title
	q.Difficulty = difficulty
	q.PartID = partID
	return nil
}

// SetAnswers replaces every answer of the question.
func (q *Question) SetAnswers(inputs []AnswerInput) error {
	correct := 0
	answers := make([]Answer, 0, len(inputs))
	for i, in := range inputs {
		title := strings.TrimSpace(in.Title)
		if title == "" {
			return fmt.Errorf("answer %d: %w", i+1, ErrEmptyAnswer)
		}
		if in.Correct {
			correct++
		}
		answers = append(answers, Answer{
			ID:         id.GenerateID(),
			QuestionID: q.ID,
			Title:      title,
			Correct:    in.Correct,
			Position:   i + 1,
		})
	}
	if correct > 1 {
		return ErrMultipleCorrect
	}
	q.Answers = answers
	return nil
}

// CorrectAnswer returns the correct option with the lowest position,
// or nil when none is flagged.
func (q *Question) CorrectAnswer() *Answer {
	var best *Answer
	for i := range q.Answers {
		a := &q.Answers[i]
		if a.Correct && (best == nil || a.Position < best.Position) {
			best = a
		}
	}
	return best
}

// ParseAnswerInputs reads the shorthand answer list where a leading "!"
// marks the correct option: ["Paris", "!Rome", "Oslo"].
func ParseAnswerInputs(raw []string) []AnswerInput {
	out := make([]AnswerInput, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if rest, ok := strings.CutPrefix(s, correctMarker); ok {
			out = append(out, AnswerInput{Title: rest, Correct: true})
			continue
		}
		out = append(out, AnswerInput{Title: s})
	}
	return out
}
