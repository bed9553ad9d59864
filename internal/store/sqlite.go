// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/examhall/backend/internal/domain/subject"
	"github.com/examhall/backend/internal/domain/user"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    first_name TEXT NOT NULL DEFAULT '',
    last_name TEXT NOT NULL DEFAULT '',
    is_admin BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS subjects (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    author_id TEXT,
    FOREIGN KEY (author_id) REFERENCES users(id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS subject_access (
    subject_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    PRIMARY KEY (subject_id, user_id),
    FOREIGN KEY (subject_id) REFERENCES subjects(id) ON DELETE CASCADE,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS parts (
    id TEXT PRIMARY KEY,
    subject_id TEXT NOT NULL,
    title TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL DEFAULT '',
    position INTEGER NOT NULL DEFAULT 0,
    questions_per_test INTEGER NOT NULL DEFAULT 0 CHECK (questions_per_test >= 0),
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (subject_id) REFERENCES subjects(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS links (
    id TEXT PRIMARY KEY,
    part_id TEXT,
    title TEXT NOT NULL UNIQUE,
    url TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (part_id) REFERENCES parts(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS questions (
    id TEXT PRIMARY KEY,
    part_id TEXT,
    title TEXT NOT NULL,
    difficulty INTEGER NOT NULL DEFAULT 1 CHECK (difficulty BETWEEN 1 AND 5),
    FOREIGN KEY (part_id) REFERENCES parts(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS answers (
    id TEXT PRIMARY KEY,
    question_id TEXT NOT NULL,
    title TEXT NOT NULL,
    correct BOOLEAN NOT NULL DEFAULT FALSE,
    position INTEGER NOT NULL,
    FOREIGN KEY (question_id) REFERENCES questions(id) ON DELETE CASCADE
);

-- Instance rows copy what they need from the bank and keep no foreign key
-- to it, so editing or deleting bank entries never rewrites a taken test.
CREATE TABLE IF NOT EXISTS tests (
    id TEXT PRIMARY KEY,
    type TEXT NOT NULL CHECK (type IN ('intermediate', 'final')),
    user_id TEXT NOT NULL,
    part_id TEXT,
    subject_id TEXT,
    topic TEXT NOT NULL DEFAULT '',
    score REAL NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    CHECK (
        (type = 'intermediate' AND part_id IS NOT NULL AND subject_id IS NULL) OR
        (type = 'final' AND subject_id IS NOT NULL AND part_id IS NULL)
    ),
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
    FOREIGN KEY (part_id) REFERENCES parts(id) ON DELETE CASCADE,
    FOREIGN KEY (subject_id) REFERENCES subjects(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS question_instances (
    id TEXT PRIMARY KEY,
    test_id TEXT NOT NULL,
    question_id TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    title TEXT NOT NULL,
    difficulty INTEGER NOT NULL,
    chosen_answer_id TEXT,
    correct BOOLEAN NOT NULL DEFAULT FALSE,
    UNIQUE (test_id, ordinal),
    FOREIGN KEY (test_id) REFERENCES tests(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS answer_instances (
    id TEXT PRIMARY KEY,
    question_instance_id TEXT NOT NULL,
    answer_id TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    title TEXT NOT NULL,
    correct BOOLEAN NOT NULL DEFAULT FALSE,
    source_position INTEGER NOT NULL DEFAULT 0,
    UNIQUE (question_instance_id, ordinal),
    FOREIGN KEY (question_instance_id) REFERENCES question_instances(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_parts_subject ON parts(subject_id);
CREATE INDEX IF NOT EXISTS idx_questions_part ON questions(part_id);
CREATE INDEX IF NOT EXISTS idx_answers_question ON answers(question_id);
CREATE INDEX IF NOT EXISTS idx_tests_user ON tests(user_id);
CREATE INDEX IF NOT EXISTS idx_tests_part ON tests(part_id);
CREATE INDEX IF NOT EXISTS idx_tests_subject ON tests(subject_id);
CREATE INDEX IF NOT EXISTS idx_question_instances_test ON question_instances(test_id);
CREATE INDEX IF NOT EXISTS idx_answer_instances_question ON answer_instances(question_instance_id);
`

type SQLiteStore struct {
	queries
	db *sql.DB
}

// NewSQLite opens (creating if needed) the database at dbPath and applies
// the schema. Every connection enforces foreign keys, waits on locks, and
// starts write transactions with BEGIN IMMEDIATE so concurrent writers
// serialize instead of failing mid-transaction.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteStore{queries: queries{q: db}, db: db}
	if err := s.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func dsn(path string) string {
	return "file:" + path +
		"?_pragma=foreign_keys(1)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=journal_mode(WAL)" +
		"&_txlock=immediate"
}

// Migrate applies the schema and forward-only column additions.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	if err := addColumnIfNotExists(ctx, s.db, "tests", "scored_at", "TEXT"); err != nil {
		return fmt.Errorf("migrate tests.scored_at: %w", err)
	}
	return nil
}

func addColumnIfNotExists(ctx context.Context, db *sql.DB, table, column, definition string) error {
	rows, err := db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		if name == column {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	_, err = db.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition))
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Users
// ============================================================================

func (q *queries) SaveUser(ctx context.Context, u *user.User) error {
	_, err := q.q.ExecContext(ctx,
		"INSERT INTO users (id, email, first_name, last_name, is_admin) VALUES (?, ?, ?, ?, ?)",
		u.ID, u.Email, u.FirstName, u.LastName, u.IsAdmin,
	)
	return wrapWrite(err)
}

func (q *queries) GetUser(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	err := q.q.QueryRowContext(ctx,
		"SELECT id, email, first_name, last_name, is_admin FROM users WHERE id = ?", id,
	).Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.IsAdmin)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (q *queries) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	err := q.q.QueryRowContext(ctx,
		"SELECT id, email, first_name, last_name, is_admin FROM users WHERE email = ?", email,
	).Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.IsAdmin)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (q *queries) ListUsers(ctx context.Context) ([]*user.User, error) {
	return q.queryUsers(ctx, "SELECT id, email, first_name, last_name, is_admin FROM users ORDER BY email")
}

func (q *queries) queryUsers(ctx context.Context, query string, args ...any) ([]*user.User, error) {
	rows, err := q.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.IsAdmin); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

// ============================================================================
// Subjects
// ============================================================================

func (q *queries) SaveSubject(ctx context.Context, s *subject.Subject) error {
	_, err := q.q.ExecContext(ctx,
		"INSERT INTO subjects (id, title, description, author_id) VALUES (?, ?, ?, ?)",
		s.ID, s.Title, s.Description, s.AuthorID,
	)
	return wrapWrite(err)
}

func (q *queries) GetSubject(ctx context.Context, id string) (*subject.Subject, error) {
	var s subject.Subject
	var authorID sql.NullString
	err := q.q.QueryRowContext(ctx,
		"SELECT id, title, description, author_id FROM subjects WHERE id = ?", id,
	).Scan(&s.ID, &s.Title, &s.Description, &authorID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	s.AuthorID = nullString(authorID)
	return &s, nil
}

func (q *queries) ListSubjects(ctx context.Context) ([]*subject.Subject, error) {
	return q.querySubjects(ctx, "SELECT id, title, description, author_id FROM subjects ORDER BY title")
}

func (q *queries) ListSubjectsByAuthor(ctx context.Context, authorID string) ([]*subject.Subject, error) {
	return q.querySubjects(ctx,
		"SELECT id, title, description, author_id FROM subjects WHERE author_id = ? ORDER BY title", authorID)
}

func (q *queries) querySubjects(ctx context.Context, query string, args ...any) ([]*subject.Subject, error) {
	rows, err := q.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []*subject.Subject
	for rows.Next() {
		var s subject.Subject
		var authorID sql.NullString
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &authorID); err != nil {
			return nil, err
		}
		s.AuthorID = nullString(authorID)
		subjects = append(subjects, &s)
	}
	return subjects, rows.Err()
}

func (q *queries) DeleteSubject(ctx context.Context, id string) error {
	return expectOne(q.q.ExecContext(ctx, "DELETE FROM subjects WHERE id = ?", id))
}

// GrantAccess subscribes a user to a subject. Granting twice is a no-op.
func (q *queries) GrantAccess(ctx context.Context, g subject.Grant) error {
	_, err := q.q.ExecContext(ctx,
		"INSERT INTO subject_access (subject_id, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		g.SubjectID, g.UserID,
	)
	return wrapWrite(err)
}

func (q *queries) RevokeAccess(ctx context.Context, g subject.Grant) error {
	return expectOne(q.q.ExecContext(ctx,
		"DELETE FROM subject_access WHERE subject_id = ? AND user_id = ?", g.SubjectID, g.UserID))
}

func (q *queries) HasAccess(ctx context.Context, subjectID, userID string) (bool, error) {
	var n int
	err := q.q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM subject_access WHERE subject_id = ? AND user_id = ?", subjectID, userID,
	).Scan(&n)
	return n > 0, err
}

// ============================================================================
// Parts
// ============================================================================

const partColumns = "id, subject_id, title, description, content, position, questions_per_test, created_at, updated_at"

func (q *queries) SavePart(ctx context.Context, p *subject.Part) error {
	_, err := q.q.ExecContext(ctx,
		"INSERT INTO parts ("+partColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		p.ID, p.SubjectID, p.Title, p.Description, p.Content, p.Position, p.QuestionsPerTest,
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	return wrapWrite(err)
}

func (q *queries) GetPart(ctx context.Context, id string) (*subject.Part, error) {
	parts, err := q.queryParts(ctx, "SELECT "+partColumns+" FROM parts WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, ErrNotFound
	}
	return parts[0], nil
}

func (q *queries) ListParts(ctx context.Context) ([]*subject.Part, error) {
	return q.queryParts(ctx, "SELECT "+partColumns+" FROM parts ORDER BY subject_id, position, title")
}

// ListPartsBySubject returns a subject's parts in display order.
func (q *queries) ListPartsBySubject(ctx context.Context, subjectID string) ([]*subject.Part, error) {
	return q.queryParts(ctx,
		"SELECT "+partColumns+" FROM parts WHERE subject_id = ? ORDER BY position, title", subjectID)
}

func (q *queries) ListPartsByAuthor(ctx context.Context, authorID string) ([]*subject.Part, error) {
	return q.queryParts(ctx, `
		SELECT p.id, p.subject_id, p.title, p.description, p.content, p.position,
		       p.questions_per_test, p.created_at, p.updated_at
		FROM parts p JOIN subjects s ON s.id = p.subject_id
		WHERE s.author_id = ?
		ORDER BY p.subject_id, p.position, p.title`, authorID)
}

func (q *queries) queryParts(ctx context.Context, query string, args ...any) ([]*subject.Part, error) {
	rows, err := q.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parts []*subject.Part
	for rows.Next() {
		var p subject.Part
		var createdAt, updatedAt string
		if err := rows.Scan(&p.ID, &p.SubjectID, &p.Title, &p.Description, &p.Content,
			&p.Position, &p.QuestionsPerTest, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if p.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}
		parts = append(parts, &p)
	}
	return parts, rows.Err()
}

func (q *queries) DeletePart(ctx context.Context, id string) error {
	return expectOne(q.q.ExecContext(ctx, "DELETE FROM parts WHERE id = ?", id))
}

// ============================================================================
// Links
// ============================================================================

func (q *queries) SaveLink(ctx context.Context, l *subject.Link) error {
	_, err := q.q.ExecContext(ctx,
		"INSERT INTO links (id, part_id, title, url) VALUES (?, ?, ?, ?)",
		l.ID, l.PartID, l.Title, l.URL,
	)
	return wrapWrite(err)
}

func (q *queries) GetLink(ctx context.Context, id string) (*subject.Link, error) {
	var l subject.Link
	var partID sql.NullString
	err := q.q.QueryRowContext(ctx,
		"SELECT id, part_id, title, url FROM links WHERE id = ?", id,
	).Scan(&l.ID, &partID, &l.Title, &l.URL)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	l.PartID = partID.String
	return &l, nil
}
