package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/examhall/backend/internal/domain/quiz"
	"github.com/examhall/backend/internal/platform/logger"
	"github.com/examhall/backend/internal/store"
)

// AnswerEntry is one pick submitted by a student.
type AnswerEntry struct {
	QuestionInstanceID string
	AnswerInstanceID   string
}

// Intake records a batch of answers and scores the test.
//
// A batch applies completely or not at all: the choices and the resulting
// score commit in the same transaction. Submissions for the same test are
// additionally serialized in process, so two batches never interleave.
type Intake struct {
	store  txRunner
	scorer *Scorer
	logger *logger.Logger
	locks  *keyedMutex
}

func NewIntake(s txRunner, scorer *Scorer, log *logger.Logger) *Intake {
	return &Intake{store: s, scorer: scorer, logger: log, locks: newKeyedMutex()}
}

// Submit applies entries to the test owned by userID and returns the
// graded test.
func (in *Intake) Submit(ctx context.Context, testID, userID string, entries []AnswerEntry) (*quiz.Test, error) {
	if err := validateEntries(entries); err != nil {
		return nil, err
	}

	unlock := in.locks.Lock(testID)
	defer unlock()

	var graded *quiz.Test
	err := in.store.WithTx(ctx, func(tx *store.Tx) error {
		t, err := tx.GetTest(ctx, testID)
		if err != nil {
			return fmt.Errorf("test %s: %w", testID, err)
		}
		if t.UserID != userID {
			return ErrForbidden
		}
		for i, e := range entries {
			if err := t.Choose(e.QuestionInstanceID, e.AnswerInstanceID); err != nil {
				if errors.Is(err, quiz.ErrQuestionNotInTest) || errors.Is(err, quiz.ErrAnswerNotForQuestion) {
					return fmt.Errorf("%w: entry %d: %w", ErrNotFound, i, err)
				}
				return err
			}
		}
		if err := tx.SaveChoices(ctx, t); err != nil {
			return err
		}
		if _, err := in.scorer.Score(ctx, tx, t.ID); err != nil {
			return err
		}
		graded, err = tx.GetTest(ctx, t.ID)
		return err
	})
	if err != nil {
		return nil, classify(err)
	}

	in.logger.Info("answers recorded",
		"test_id", testID,
		"entries", len(entries),
		"score", graded.Score,
	)
	return graded, nil
}

func validateEntries(entries []AnswerEntry) error {
	if len(entries) == 0 {
		return &ValidationError{Index: -1, Field: "answers", Reason: "at least one answer is required"}
	}
	for i, e := range entries {
		if strings.TrimSpace(e.QuestionInstanceID) == "" {
			return &ValidationError{Index: i, Field: "question_instance_id", Reason: "required"}
		}
		if strings.TrimSpace(e.AnswerInstanceID) == "" {
			return &ValidationError{Index: i, Field: "answer_instance_id", Reason: "required"}
		}
	}
	return nil
}
