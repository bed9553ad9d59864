package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/examhall/backend/internal/domain/quiz"
	"github.com/examhall/backend/internal/platform/logger"
	"github.com/examhall/backend/internal/store"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *store.Tx) error) error
}

// Builder samples questions from the bank and materializes new tests.
type Builder struct {
	store   txRunner
	logger  *logger.Logger
	newRand func() *rand.Rand
}

type BuilderOption func(*Builder)

// WithRandSource replaces the per-call random source, e.g. with a seeded one.
func WithRandSource(fn func() *rand.Rand) BuilderOption {
	return func(b *Builder) { b.newRand = fn }
}

func NewBuilder(s txRunner, log *logger.Logger, opts ...BuilderOption) *Builder {
	b := &Builder{store: s, logger: log, newRand: quiz.NewRand}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Generate creates a test of the given type for userID. targetID is a part
// id for intermediate tests and a subject id for final tests. The test and
// every question and answer instance are written in one transaction.
func (b *Builder) Generate(ctx context.Context, userID string, typ quiz.Type, targetID string) (*quiz.Test, error) {
	if !typ.Valid() {
		return nil, invalid("type", quiz.ErrInvalidType)
	}
	rng := b.newRand()

	var t *quiz.Test
	err := b.store.WithTx(ctx, func(tx *store.Tx) error {
		var err error
		switch typ {
		case quiz.TypeIntermediate:
			t, err = b.intermediate(ctx, tx, userID, targetID, rng)
		case quiz.TypeFinal:
			t, err = b.final(ctx, tx, userID, targetID, rng)
		}
		if err != nil {
			return err
		}
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInternal, err)
		}
		if err := tx.InsertTest(ctx, t); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return fmt.Errorf("%w: %w", ErrGenerationConflict, err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	b.logger.Info("test generated",
		"test_id", t.ID,
		"type", string(t.Type),
		"user_id", userID,
		"questions", len(t.Questions),
	)
	return t, nil
}

func (b *Builder) intermediate(ctx context.Context, tx *store.Tx, userID, partID string, rng *rand.Rand) (*quiz.Test, error) {
	part, err := tx.GetPart(ctx, partID)
	if err != nil {
		return nil, fmt.Errorf("part %s: %w", partID, err)
	}
	questions, err := tx.ListQuestionsByPart(ctx, part.ID)
	if err != nil {
		return nil, err
	}
	return quiz.NewIntermediate(userID, quiz.PartBank{Part: *part, Questions: questions}, rng), nil
}

func (b *Builder) final(ctx context.Context, tx *store.Tx, userID, subjectID string, rng *rand.Rand) (*quiz.Test, error) {
	subj, err := tx.GetSubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("subject %s: %w", subjectID, err)
	}
	parts, err := tx.ListPartsBySubject(ctx, subj.ID)
	if err != nil {
		return nil, err
	}
	banks := make([]quiz.PartBank, 0, len(parts))
	for _, p := range parts {
		questions, err := tx.ListQuestionsByPart(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		banks = append(banks, quiz.PartBank{Part: *p, Questions: questions})
	}
	return quiz.NewFinal(userID, *subj, banks, rng), nil
}
