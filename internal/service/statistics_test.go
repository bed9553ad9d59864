package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examhall/backend/internal/domain/quiz"
	"github.com/examhall/backend/internal/domain/statistics"
	"github.com/examhall/backend/internal/domain/subject"
	"github.com/examhall/backend/internal/service"
)

func TestSummarize_EmptyScopesReportZeros(t *testing.T) {
	e := newEnv(t)
	e.part(t, "Unused", 1, 1)

	got, err := e.stats.Summarize(context.Background(), e.author, statistics.KindPart)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Unused", got[0].Label)
	assert.Equal(t, statistics.Summary{}, got[0].Summary)
}

func TestSummarize_SubjectAndUser(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	test := finalTest(t, e)
	_, err := e.intake.Submit(ctx, test.ID, e.student.ID, []service.AnswerEntry{
		pick(test.Questions[0], true),
		pick(test.Questions[1], false),
	})
	require.NoError(t, err)
	// A second, unanswered attempt still counts, with score 0.
	_, err = e.builder.Generate(ctx, e.student.ID, quiz.TypeFinal, e.subject.ID)
	require.NoError(t, err)

	subjects, err := e.stats.Summarize(ctx, e.author, statistics.KindSubject)
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, 2, subjects[0].TestsCount)
	assert.InDelta(t, 0.0, subjects[0].MinScore, 1e-9)
	assert.InDelta(t, 60.0, subjects[0].MaxScore, 1e-9)
	assert.InDelta(t, 30.0, subjects[0].AvgScore, 1e-9)

	users, err := e.stats.Summarize(ctx, e.author, statistics.KindUser)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, e.student.Email, users[0].Label)
	assert.Equal(t, 2, users[0].TestsCount)
}

func TestSummarize_Visibility(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	finalTest(t, e)

	foreign, err := subject.New("Chemistry", "", &e.admin.ID)
	require.NoError(t, err)
	require.NoError(t, e.store.SaveSubject(ctx, foreign))

	adminView, err := e.stats.Summarize(ctx, e.admin, statistics.KindSubject)
	require.NoError(t, err)
	assert.Len(t, adminView, 2)

	authorView, err := e.stats.Summarize(ctx, e.author, statistics.KindSubject)
	require.NoError(t, err)
	require.Len(t, authorView, 1)
	assert.Equal(t, e.subject.ID, authorView[0].ID)

	studentView, err := e.stats.Summarize(ctx, e.student, statistics.KindSubject)
	require.NoError(t, err)
	assert.Empty(t, studentView)

	adminUsers, err := e.stats.Summarize(ctx, e.admin, statistics.KindUser)
	require.NoError(t, err)
	assert.Len(t, adminUsers, 3)
}

func TestSummarize_UnknownKind(t *testing.T) {
	e := newEnv(t)

	_, err := e.stats.Summarize(context.Background(), e.admin, statistics.Kind("course"))
	var ve *service.ValidationError
	assert.ErrorAs(t, err, &ve)
}
