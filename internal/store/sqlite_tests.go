package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/examhall/backend/internal/domain/quiz"
)

// ============================================================================
// Tests
// ============================================================================

// InsertTest persists a freshly generated test with all of its question and
// answer instances. Run it inside WithTx: readers must never see a test
// with only part of its questions.
func (q *queries) InsertTest(ctx context.Context, t *quiz.Test) error {
	_, err := q.q.ExecContext(ctx,
		"INSERT INTO tests (id, type, user_id, part_id, subject_id, topic, score, created_at, scored_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		t.ID, string(t.Type), t.UserID, t.PartID, t.SubjectID, t.Topic, t.Score,
		formatTime(t.CreatedAt), formatTimePtr(t.ScoredAt),
	)
	if err != nil {
		return wrapWrite(err)
	}

	for _, qi := range t.Questions {
		_, err := q.q.ExecContext(ctx,
			"INSERT INTO question_instances (id, test_id, question_id, ordinal, title, difficulty, chosen_answer_id, correct) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			qi.ID, t.ID, qi.QuestionID, qi.Ordinal, qi.Title, qi.Difficulty, qi.ChosenAnswerID, qi.Correct,
		)
		if err != nil {
			return wrapWrite(err)
		}
		for _, ai := range qi.Answers {
			_, err := q.q.ExecContext(ctx,
				"INSERT INTO answer_instances (id, question_instance_id, answer_id, ordinal, title, correct, source_position) VALUES (?, ?, ?, ?, ?, ?, ?)",
				ai.ID, qi.ID, ai.AnswerID, ai.Ordinal, ai.Title, ai.Correct, ai.SourcePosition,
			)
			if err != nil {
				return wrapWrite(err)
			}
		}
	}
	return nil
}

// GetTest loads the full test graph, questions and answers in ordinal order.
func (q *queries) GetTest(ctx context.Context, id string) (*quiz.Test, error) {
	var t quiz.Test
	var typ, createdAt string
	var partID, subjectID, scoredAt sql.NullString
	err := q.q.QueryRowContext(ctx,
		"SELECT id, type, user_id, part_id, subject_id, topic, score, created_at, scored_at FROM tests WHERE id = ?", id,
	).Scan(&t.ID, &typ, &t.UserID, &partID, &subjectID, &t.Topic, &t.Score, &createdAt, &scoredAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	t.Type = quiz.Type(typ)
	t.PartID = nullString(partID)
	t.SubjectID = nullString(subjectID)
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if t.ScoredAt, err = parseTimePtr(scoredAt); err != nil {
		return nil, err
	}

	rows, err := q.q.QueryContext(ctx,
		"SELECT id, question_id, ordinal, title, difficulty, chosen_answer_id, correct FROM question_instances WHERE test_id = ? ORDER BY ordinal",
		id,
	)
	if err != nil {
		return nil, err
	}
	t.Questions = []quiz.QuestionInstance{}
	index := make(map[string]int)
	for rows.Next() {
		qi := quiz.QuestionInstance{TestID: t.ID, Answers: []quiz.AnswerInstance{}}
		var chosen sql.NullString
		if err := rows.Scan(&qi.ID, &qi.QuestionID, &qi.Ordinal, &qi.Title, &qi.Difficulty, &chosen, &qi.Correct); err != nil {
			rows.Close()
			return nil, err
		}
		qi.ChosenAnswerID = nullString(chosen)
		index[qi.ID] = len(t.Questions)
		t.Questions = append(t.Questions, qi)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = q.q.QueryContext(ctx, `
		SELECT ai.id, ai.question_instance_id, ai.answer_id, ai.ordinal, ai.title, ai.correct, ai.source_position
		FROM answer_instances ai JOIN question_instances qi ON qi.id = ai.question_instance_id
		WHERE qi.test_id = ?
		ORDER BY qi.ordinal, ai.ordinal`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var ai quiz.AnswerInstance
		if err := rows.Scan(&ai.ID, &ai.QuestionInstanceID, &ai.AnswerID, &ai.Ordinal, &ai.Title, &ai.Correct, &ai.SourcePosition); err != nil {
			return nil, err
		}
		i := index[ai.QuestionInstanceID]
		t.Questions[i].Answers = append(t.Questions[i].Answers, ai)
	}
	return &t, rows.Err()
}

// TestOwner returns the id of the user who took the test.
func (q *queries) TestOwner(ctx context.Context, id string) (string, error) {
	var userID string
	err := q.q.QueryRowContext(ctx, "SELECT user_id FROM tests WHERE id = ?", id).Scan(&userID)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return userID, err
}

// SaveChoices stores the chosen answer of every question instance.
func (q *queries) SaveChoices(ctx context.Context, t *quiz.Test) error {
	for _, qi := range t.Questions {
		err := expectOne(q.q.ExecContext(ctx,
			"UPDATE question_instances SET chosen_answer_id = ? WHERE id = ? AND test_id = ?",
			qi.ChosenAnswerID, qi.ID, t.ID,
		))
		if err != nil {
			return err
		}
	}
	return nil
}

// SaveGrades stores per-question correctness, the aggregate score and the
// grading time.
func (q *queries) SaveGrades(ctx context.Context, t *quiz.Test, at time.Time) error {
	for _, qi := range t.Questions {
		err := expectOne(q.q.ExecContext(ctx,
			"UPDATE question_instances SET correct = ? WHERE id = ? AND test_id = ?",
			qi.Correct, qi.ID, t.ID,
		))
		if err != nil {
			return err
		}
	}
	if err := expectOne(q.q.ExecContext(ctx,
		"UPDATE tests SET score = ?, scored_at = ? WHERE id = ?",
		t.Score, formatTime(at), t.ID,
	)); err != nil {
		return err
	}
	at = at.UTC()
	t.ScoredAt = &at
	return nil
}

func (q *queries) DeleteTest(ctx context.Context, id string) error {
	return expectOne(q.q.ExecContext(ctx, "DELETE FROM tests WHERE id = ?", id))
}
