package service_test

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/examhall/backend/internal/domain/question"
	"github.com/examhall/backend/internal/domain/subject"
	"github.com/examhall/backend/internal/domain/user"
	"github.com/examhall/backend/internal/platform/logger"
	"github.com/examhall/backend/internal/service"
	"github.com/examhall/backend/internal/store"
)

type env struct {
	store   *store.SQLiteStore
	access  *service.Access
	builder *service.Builder
	intake  *service.Intake
	bank    *service.QuestionBank
	stats   *service.Aggregator

	admin   *user.User
	author  *user.User
	student *user.User
	subject *subject.Subject
}

func newEnv(t *testing.T) *env {
	t.Helper()
	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	log := logger.NewNop()
	access := service.NewAccess(s)
	seed := uint64(1)
	e := &env{
		store:  s,
		access: access,
		builder: service.NewBuilder(s, log, service.WithRandSource(func() *rand.Rand {
			seed++
			return rand.New(rand.NewPCG(seed, 42))
		})),
		intake: service.NewIntake(s, service.NewScorer(log), log),
		bank:   service.NewQuestionBank(s, access, log),
		stats:  service.NewAggregator(s, 2),
	}

	e.admin = e.user(t, "admin@example.com", true)
	e.author = e.user(t, "author@example.com", false)
	e.student = e.user(t, "student@example.com", false)

	subj, err := subject.New("Physics", "", &e.author.ID)
	require.NoError(t, err)
	require.NoError(t, s.SaveSubject(context.Background(), subj))
	e.subject = subj
	return e
}

func (e *env) user(t *testing.T, email string, admin bool) *user.User {
	t.Helper()
	u, err := user.New(email, "", "")
	require.NoError(t, err)
	u.IsAdmin = admin
	require.NoError(t, e.store.SaveUser(context.Background(), u))
	return u
}

func (e *env) part(t *testing.T, title string, position, quota int) *subject.Part {
	t.Helper()
	p, err := subject.NewPart(e.subject.ID, title, position, quota)
	require.NoError(t, err)
	require.NoError(t, e.store.SavePart(context.Background(), p))
	return p
}

// question stores a question whose answers use the "!" shorthand.
func (e *env) question(t *testing.T, partID, title string, difficulty int, answers ...string) *question.Question {
	t.Helper()
	q, err := e.bank.Create(context.Background(), e.author, service.QuestionInput{
		Title:        title,
		Difficulty:   difficulty,
		PartID:       &partID,
		AnswersInput: answers,
	})
	require.NoError(t, err)
	return q
}

func (e *env) grant(t *testing.T, u *user.User) {
	t.Helper()
	require.NoError(t, e.store.GrantAccess(context.Background(), subject.Grant{SubjectID: e.subject.ID, UserID: u.ID}))
}
