package service

import (
	"context"
	"time"

	"github.com/examhall/backend/internal/platform/logger"
	"github.com/examhall/backend/internal/store"
)

// Scorer grades a test against the correctness flags frozen into it.
type Scorer struct {
	logger *logger.Logger
	now    func() time.Time
}

func NewScorer(log *logger.Logger) *Scorer {
	return &Scorer{logger: log, now: time.Now}
}

// Score grades the test inside tx and persists per-question correctness,
// the weighted score and the grading time. It reads the test through tx,
// so the result reflects exactly the answers written in that transaction.
func (s *Scorer) Score(ctx context.Context, tx *store.Tx, testID string) (float64, error) {
	t, err := tx.GetTest(ctx, testID)
	if err != nil {
		return 0, classify(err)
	}
	score := t.Grade()
	if err := tx.SaveGrades(ctx, t, s.now()); err != nil {
		return 0, classify(err)
	}
	s.logger.Debug("test scored", "test_id", testID, "score", score)
	return score, nil
}
