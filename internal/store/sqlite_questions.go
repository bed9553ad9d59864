package store

import (
	"context"
	"database/sql"

	"github.com/examhall/backend/internal/domain/question"
)

// ============================================================================
// Questions
// ============================================================================

// SaveQuestion inserts a question and its answers. Call it inside WithTx
// so a failed answer insert does not leave a bare question behind.
func (q *queries) SaveQuestion(ctx context.Context, qu *question.Question) error {
	_, err := q.q.ExecContext(ctx,
		"INSERT INTO questions (id, part_id, title, difficulty) VALUES (?, ?, ?, ?)",
		qu.ID, qu.PartID, qu.Title, qu.Difficulty,
	)
	if err != nil {
		return wrapWrite(err)
	}
	return q.insertAnswers(ctx, qu.Answers)
}

// UpdateQuestion rewrites the question row. When replaceAnswers is true the
// stored answers are dropped and qu.Answers inserted in their place.
func (q *queries) UpdateQuestion(ctx context.Context, qu *question.Question, replaceAnswers bool) error {
	err := expectOne(q.q.ExecContext(ctx,
		"UPDATE questions SET part_id = ?, title = ?, difficulty = ? WHERE id = ?",
		qu.PartID, qu.Title, qu.Difficulty, qu.ID,
	))
	if err != nil || !replaceAnswers {
		return err
	}
	if _, err := q.q.ExecContext(ctx, "DELETE FROM answers WHERE question_id = ?", qu.ID); err != nil {
		return err
	}
	return q.insertAnswers(ctx, qu.Answers)
}

func (q *queries) insertAnswers(ctx context.Context, answers []question.Answer) error {
	for _, a := range answers {
		_, err := q.q.ExecContext(ctx,
			"INSERT INTO answers (id, question_id, title, correct, position) VALUES (?, ?, ?, ?, ?)",
			a.ID, a.QuestionID, a.Title, a.Correct, a.Position,
		)
		if err != nil {
			return wrapWrite(err)
		}
	}
	return nil
}

// DeleteQuestion removes a question; its answers go with it.
func (q *queries) DeleteQuestion(ctx context.Context, id string) error {
	return expectOne(q.q.ExecContext(ctx, "DELETE FROM questions WHERE id = ?", id))
}

func (q *queries) DeleteAnswer(ctx context.Context, id string) error {
	return expectOne(q.q.ExecContext(ctx, "DELETE FROM answers WHERE id = ?", id))
}

func (q *queries) GetQuestion(ctx context.Context, id string) (*question.Question, error) {
	var qu question.Question
	var partID sql.NullString
	err := q.q.QueryRowContext(ctx,
		"SELECT id, part_id, title, difficulty FROM questions WHERE id = ?", id,
	).Scan(&qu.ID, &partID, &qu.Title, &qu.Difficulty)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	qu.PartID = nullString(partID)

	answers, err := q.queryAnswers(ctx,
		"SELECT id, question_id, title, correct, position FROM answers WHERE question_id = ? ORDER BY position", id)
	if err != nil {
		return nil, err
	}
	qu.Answers = answers[id]
	if qu.Answers == nil {
		qu.Answers = []question.Answer{}
	}
	return &qu, nil
}

// ListQuestionsByPart returns every question of a part with its answers,
// in a stable order.
func (q *queries) ListQuestionsByPart(ctx context.Context, partID string) ([]question.Question, error) {
	rows, err := q.q.QueryContext(ctx,
		"SELECT id, part_id, title, difficulty FROM questions WHERE part_id = ? ORDER BY title, id", partID)
	if err != nil {
		return nil, err
	}
	var questions []question.Question
	for rows.Next() {
		var qu question.Question
		var pid sql.NullString
		if err := rows.Scan(&qu.ID, &pid, &qu.Title, &qu.Difficulty); err != nil {
			rows.Close()
			return nil, err
		}
		qu.PartID = nullString(pid)
		questions = append(questions, qu)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	answers, err := q.queryAnswers(ctx, `
		SELECT a.id, a.question_id, a.title, a.correct, a.position
		FROM answers a JOIN questions qu ON qu.id = a.question_id
		WHERE qu.part_id = ?
		ORDER BY a.question_id, a.position`, partID)
	if err != nil {
		return nil, err
	}
	for i := range questions {
		questions[i].Answers = answers[questions[i].ID]
		if questions[i].Answers == nil {
			questions[i].Answers = []question.Answer{}
		}
	}
	return questions, nil
}

// queryAnswers groups answer rows by question id.
func (q *queries) queryAnswers(ctx context.Context, query string, args ...any) (map[string][]question.Answer, error) {
	rows, err := q.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byQuestion := make(map[string][]question.Answer)
	for rows.Next() {
		var a question.Answer
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.Title, &a.Correct, &a.Position); err != nil {
			return nil, err
		}
		byQuestion[a.QuestionID] = append(byQuestion[a.QuestionID], a)
	}
	return byQuestion, rows.Err()
}
