package service

import (
	"context"
	"errors"

	"github.com/examhall/backend/internal/domain/question"
	"github.com/examhall/backend/internal/domain/scope"
	"github.com/examhall/backend/internal/domain/user"
	"github.com/examhall/backend/internal/platform/logger"
	"github.com/examhall/backend/internal/store"
)

// QuestionInput carries an author's question. Answers and AnswersInput are
// alternative spellings of the answer list; at most one may be set. When
// both are nil the answers are left untouched on update.
type QuestionInput struct {
	Title        string
	Difficulty   int
	PartID       *string
	Answers      []question.AnswerInput
	AnswersInput []string
}

func (in QuestionInput) answers() ([]question.AnswerInput, bool, error) {
	switch {
	case in.Answers != nil && in.AnswersInput != nil:
		return nil, false, invalid("answers", question.ErrConflictingInputs)
	case in.Answers != nil:
		return in.Answers, true, nil
	case in.AnswersInput != nil:
		return question.ParseAnswerInputs(in.AnswersInput), true, nil
	}
	return nil, false, nil
}

type questionStore interface {
	txRunner
	GetQuestion(ctx context.Context, id string) (*question.Question, error)
}

// QuestionBank manages questions and their answers on behalf of authors.
type QuestionBank struct {
	store  questionStore
	access *Access
	logger *logger.Logger
}

func NewQuestionBank(s questionStore, access *Access, log *logger.Logger) *QuestionBank {
	return &QuestionBank{store: s, access: access, logger: log}
}

func (b *QuestionBank) Create(ctx context.Context, u *user.User, in QuestionInput) (*question.Question, error) {
	answers, _, err := in.answers()
	if err != nil {
		return nil, err
	}
	if err := b.authorize(ctx, u, in.PartID); err != nil {
		return nil, err
	}

	q, err := question.New(in.Title, in.Difficulty, in.PartID)
	if err != nil {
		return nil, questionInvalid(err)
	}
	if err := q.SetAnswers(answers); err != nil {
		return nil, questionInvalid(err)
	}
	err = b.store.WithTx(ctx, func(tx *store.Tx) error {
		return tx.SaveQuestion(ctx, q)
	})
	if err != nil {
		return nil, classify(err)
	}
	b.logger.Info("question created", "question_id", q.ID, "answers", len(q.Answers))
	return q, nil
}

func (b *QuestionBank) Get(ctx context.Context, u *user.User, id string) (*question.Question, error) {
	q, err := b.store.GetQuestion(ctx, id)
	if err != nil {
		return nil, classify(err)
	}
	if err := b.authorize(ctx, u, q.PartID); err != nil {
		return nil, err
	}
	return q, nil
}

// Update rewrites the question and, when answers are supplied, replaces
// all of them. Tests already generated keep their own copies.
func (b *QuestionBank) Update(ctx context.Context, u *user.User, id string, in QuestionInput) (*question.Question, error) {
	answers, replace, err := in.answers()
	if err != nil {
		return nil, err
	}

	var q *question.Question
	err = b.store.WithTx(ctx, func(tx *store.Tx) error {
		var err error
		q, err = tx.GetQuestion(ctx, id)
		if err != nil {
			return err
		}
		if err := b.authorize(ctx, u, q.PartID); err != nil {
			return err
		}
		if !samePart(q.PartID, in.PartID) {
			if err := b.authorize(ctx, u, in.PartID); err != nil {
				return err
			}
		}
		if err := q.Update(in.Title, in.Difficulty, in.PartID); err != nil {
			return questionInvalid(err)
		}
		if replace {
			if err := q.SetAnswers(answers); err != nil {
				return questionInvalid(err)
			}
		}
		return tx.UpdateQuestion(ctx, q, replace)
	})
	if err != nil {
		return nil, classify(err)
	}
	b.logger.Info("question updated", "question_id", q.ID, "answers_replaced", replace)
	return q, nil
}

func (b *QuestionBank) Delete(ctx context.Context, u *user.User, id string) error {
	err := b.store.WithTx(ctx, func(tx *store.Tx) error {
		q, err := tx.GetQuestion(ctx, id)
		if err != nil {
			return err
		}
		if err := b.authorize(ctx, u, q.PartID); err != nil {
			return err
		}
		return tx.DeleteQuestion(ctx, id)
	})
	if err != nil {
		return classify(err)
	}
	b.logger.Info("question deleted", "question_id", id)
	return nil
}

// authorize checks that u may author questions in partID. A nil part
// means an unattached question, which only admins manage.
func (b *QuestionBank) authorize(ctx context.Context, u *user.User, partID *string) error {
	if partID == nil {
		if u.IsAdmin {
			return nil
		}
		return ErrForbidden
	}
	ok, err := b.access.CanAuthor(ctx, u, scope.Part{ID: *partID})
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

func samePart(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func questionInvalid(err error) error {
	switch {
	case errors.Is(err, question.ErrEmptyTitle):
		return invalid("title", err)
	case errors.Is(err, question.ErrDifficultyRange):
		return invalid("difficulty", err)
	case errors.Is(err, question.ErrEmptyAnswer), errors.Is(err, question.ErrMultipleCorrect):
		return invalid("answers", err)
	}
	return err
}
