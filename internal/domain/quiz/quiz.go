package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/examhall/backend/internal/domain/question"
	"github.com/examhall/backend/internal/domain/subject"
	"github.com/examhall/backend/internal/id"
)

type Type string

const (
	TypeIntermediate Type = "intermediate" // scoped to one Part
	TypeFinal        Type = "final"        // scoped to a whole Subject
)

var (
	ErrInvalidType          = errors.New("test type must be intermediate or final")
	ErrInvalidScope         = errors.New("test must reference exactly one of part or subject, matching its type")
	ErrQuestionNotInTest    = errors.New("question instance does not belong to this test")
	ErrAnswerNotForQuestion = errors.New("answer instance does not belong to this question instance")
)

func (t Type) Valid() bool {
	return t == TypeIntermediate || t == TypeFinal
}

// Label is the human-readable name used in API responses.
func (t Type) Label() string {
	if t == TypeFinal {
		return "Final"
	}
	return "Intermediate"
}

// Test is one student's attempt. Its questions and answer order are frozen
// when it is generated; only answers, correctness and score change later.
type Test struct {
	ID        string
	Type      Type
	UserID    string
	PartID    *string
	SubjectID *string
	Topic     string // part or subject title at generation time
	Score     float64
	CreatedAt time.Time
	ScoredAt  *time.Time
	Questions []QuestionInstance
}

// QuestionInstance is a sampled question inside a Test. Title and
// Difficulty are copied from the bank at generation time.
type QuestionInstance struct {
	ID             string
	TestID         string
	QuestionID     string
	Ordinal        int
	Title          string
	Difficulty     int
	ChosenAnswerID *string // ground-truth answer id; nil until answered
	Correct        bool
	Answers        []AnswerInstance
}

// AnswerInstance is one shuffled option of a QuestionInstance.
type AnswerInstance struct {
	ID                 string
	QuestionInstanceID string
	AnswerID           string
	Ordinal            int
	Title              string
	Correct            bool
	SourcePosition     int // authoring position of the ground-truth answer
}

// PartBank is a part together with the questions that belong to it.
type PartBank struct {
	Part      subject.Part
	Questions []question.Question
}

// NewIntermediate materializes a test over a single part.
func NewIntermediate(userID string, bank PartBank, rng *rand.Rand) *Test {
	partID := bank.Part.ID
	t := newTest(TypeIntermediate, userID, bank.Part.Title)
	t.PartID = &partID
	t.appendPart(bank, rng)
	return t
}

// NewFinal materializes a test over every part of a subject. Ordinals run
// continuously across parts in the order banks are given.
func NewFinal(userID string, subj subject.Subject, banks []PartBank, rng *rand.Rand) *Test {
	subjectID := subj.ID
	t := newTest(TypeFinal, userID, subj.Title)
	t.SubjectID = &subjectID
	for _, bank := range banks {
		t.appendPart(bank, rng)
	}
	return t
}

func newTest(typ Type, userID, topic string) *Test {
	return &Test{
		ID:        id.GenerateID(),
		Type:      typ,
		UserID:    userID,
		Topic:     topic,
		CreatedAt: time.Now().UTC(),
		Questions: []QuestionInstance{},
	}
}

func (t *Test) appendPart(bank PartBank, rng *rand.Rand) {
	for _, q := range Sample(bank.Questions, bank.Part.QuestionsPerTest, rng) {
		qi := QuestionInstance{
			ID:         id.GenerateID(),
			TestID:     t.ID,
			QuestionID: q.ID,
			Ordinal:    len(t.Questions) + 1,
			Title:      q.Title,
			Difficulty: q.Difficulty,
			Answers:    []AnswerInstance{},
		}
		for i, a := range Shuffle(q.Answers, rng) {
			qi.Answers = append(qi.Answers, AnswerInstance{
				ID:                 id.GenerateID(),
				QuestionInstanceID: qi.ID,
				AnswerID:           a.ID,
				Ordinal:            i + 1,
				Title:              a.Title,
				Correct:            a.Correct,
				SourcePosition:     a.Position,
			})
		}
		t.Questions = append(t.Questions, qi)
	}
}

// Validate checks that the test references exactly one scope matching its type.
func (t *Test) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	switch t.Type {
	case TypeIntermediate:
		if t.PartID == nil || t.SubjectID != nil {
			return ErrInvalidScope
		}
	case TypeFinal:
		if t.SubjectID == nil || t.PartID != nil {
			return ErrInvalidScope
		}
	}
	return nil
}

// Question finds a question instance by id.
func (t *Test) Question(questionInstanceID string) *QuestionInstance {
	for i := range t.Questions {
		if t.Questions[i].ID == questionInstanceID {
			return &t.Questions[i]
		}
	}
	return nil
}

// Choose records the student's pick for one question, overwriting any
// earlier pick. Both ids must belong to this test.
func (t *Test) Choose(questionInstanceID, answerInstanceID string) error {
	qi := t.Question(questionInstanceID)
	if qi == nil {
		return fmt.Errorf("%w: %s", ErrQuestionNotInTest, questionInstanceID)
	}
	ai := qi.Answer(answerInstanceID)
	if ai == nil {
		return fmt.Errorf("%w: %s", ErrAnswerNotForQuestion, answerInstanceID)
	}
	answerID := ai.AnswerID
	qi.ChosenAnswerID = &answerID
	return nil
}

// Answer finds an answer instance of this question by id.
func (qi *QuestionInstance) Answer(answerInstanceID string) *AnswerInstance {
	for i := range qi.Answers {
		if qi.Answers[i].ID == answerInstanceID {
			return &qi.Answers[i]
		}
	}
	return nil
}

// CorrectAnswer returns the option flagged correct at generation time.
// With several flagged, the lowest authoring position wins.
func (qi *QuestionInstance) CorrectAnswer() *AnswerInstance {
	var best *AnswerInstance
	for i := range qi.Answers {
		a := &qi.Answers[i]
		if a.Correct && (best == nil || a.SourcePosition < best.SourcePosition) {
			best = a
		}
	}
	return best
}

// ChosenAnswer returns the option the student picked, or nil.
func (qi *QuestionInstance) ChosenAnswer() *AnswerInstance {
	if qi.ChosenAnswerID == nil {
		return nil
	}
	for i := range qi.Answers {
		if qi.Answers[i].AnswerID == *qi.ChosenAnswerID {
			return &qi.Answers[i]
		}
	}
	return nil
}

func (qi *QuestionInstance) grade() bool {
	correct := qi.CorrectAnswer()
	if qi.ChosenAnswerID == nil || correct == nil {
		return false
	}
	return *qi.ChosenAnswerID == correct.AnswerID
}

// Grade marks every question and sets Score to the difficulty-weighted
// percentage of correct answers. A test without questions scores 0.
func (t *Test) Grade() float64 {
	var earned, total int
	for i := range t.Questions {
		qi := &t.Questions[i]
		qi.Correct = qi.grade()
		total += qi.Difficulty
		if qi.Correct {
			earned += qi.Difficulty
		}
	}
	if total == 0 {
		t.Score = 0
		return 0
	}
	t.Score = float64(earned) * 100 / float64(total)
	return t.Score
}

// Scored reports whether the test has been graded at least once.
func (t *Test) Scored() bool {
	return t.ScoredAt != nil
}
