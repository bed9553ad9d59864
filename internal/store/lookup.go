package store

import (
	"context"
	"database/sql"
)

// The methods below satisfy scope.Lookup for both the store and a Tx.

func (q *queries) PartSubjectID(ctx context.Context, partID string) (string, error) {
	var subjectID string
	err := q.q.QueryRowContext(ctx, "SELECT subject_id FROM parts WHERE id = ?", partID).Scan(&subjectID)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return subjectID, err
}

func (q *queries) LinkPartID(ctx context.Context, linkID string) (string, error) {
	var partID sql.NullString
	err := q.q.QueryRowContext(ctx, "SELECT part_id FROM links WHERE id = ?", linkID).Scan(&partID)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return partID.String, err
}

func (q *queries) QuestionPartID(ctx context.Context, questionID string) (string, error) {
	var partID sql.NullString
	err := q.q.QueryRowContext(ctx, "SELECT part_id FROM questions WHERE id = ?", questionID).Scan(&partID)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return partID.String, err
}

func (q *queries) TestScope(ctx context.Context, testID string) (string, string, error) {
	var partID, subjectID sql.NullString
	err := q.q.QueryRowContext(ctx, "SELECT part_id, subject_id FROM tests WHERE id = ?", testID).Scan(&partID, &subjectID)
	if err == sql.ErrNoRows {
		return "", "", ErrNotFound
	}
	return partID.String, subjectID.String, err
}
