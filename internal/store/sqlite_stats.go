package store

import (
	"context"

	"github.com/examhall/backend/internal/domain/statistics"
	"github.com/examhall/backend/internal/domain/user"
)

// ============================================================================
// Statistics
// ============================================================================

// Unscored tests keep their default score of 0 and are counted as such.
const summaryColumns = "COUNT(*), COALESCE(MIN(score), 0), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0)"

// SummaryBySubject aggregates the final tests taken over a subject.
func (q *queries) SummaryBySubject(ctx context.Context, subjectID string) (statistics.Summary, error) {
	return q.summary(ctx, "SELECT "+summaryColumns+" FROM tests WHERE subject_id = ?", subjectID)
}

// SummaryByPart aggregates the intermediate tests taken over a part.
func (q *queries) SummaryByPart(ctx context.Context, partID string) (statistics.Summary, error) {
	return q.summary(ctx, "SELECT "+summaryColumns+" FROM tests WHERE part_id = ?", partID)
}

// SummaryByUser aggregates every test the user took.
func (q *queries) SummaryByUser(ctx context.Context, userID string) (statistics.Summary, error) {
	return q.summary(ctx, "SELECT "+summaryColumns+" FROM tests WHERE user_id = ?", userID)
}

// SummaryByUserForAuthor aggregates the user's tests restricted to subjects
// written by authorID, either directly (final) or through a part (intermediate).
func (q *queries) SummaryByUserForAuthor(ctx context.Context, userID, authorID string) (statistics.Summary, error) {
	return q.summary(ctx, `
		SELECT `+summaryColumns+`
		FROM tests t
		WHERE t.user_id = ? AND `+authoredTestFilter, userID, authorID, authorID)
}

// ListUsersTestedByAuthor returns the users who took at least one test on a
// subject written by authorID.
func (q *queries) ListUsersTestedByAuthor(ctx context.Context, authorID string) ([]*user.User, error) {
	return q.queryUsers(ctx, `
		SELECT u.id, u.email, u.first_name, u.last_name, u.is_admin
		FROM users u
		WHERE EXISTS (
			SELECT 1 FROM tests t WHERE t.user_id = u.id AND `+authoredTestFilter+`
		)
		ORDER BY u.email`, authorID, authorID)
}

// authoredTestFilter takes the author id twice.
const authoredTestFilter = `(
	t.subject_id IN (SELECT id FROM subjects WHERE author_id = ?) OR
	t.part_id IN (SELECT p.id FROM parts p JOIN subjects s ON s.id = p.subject_id WHERE s.author_id = ?)
)`

func (q *queries) summary(ctx context.Context, query string, args ...any) (statistics.Summary, error) {
	var s statistics.Summary
	err := q.q.QueryRowContext(ctx, query, args...).Scan(&s.TestsCount, &s.MinScore, &s.MaxScore, &s.AvgScore)
	return s, err
}
