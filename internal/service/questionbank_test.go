package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examhall/backend/internal/domain/question"
	"github.com/examhall/backend/internal/service"
)

func TestQuestionBank_Create(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	part := e.part(t, "Intro", 1, 1)

	q, err := e.bank.Create(ctx, e.author, service.QuestionInput{
		Title:   "Capital of Italy?",
		PartID:  &part.ID,
		Answers: []question.AnswerInput{{Title: "Paris"}, {Title: "Rome", Correct: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, question.DefaultDifficulty, q.Difficulty)

	got, err := e.bank.Get(ctx, e.author, q.ID)
	require.NoError(t, err)
	require.Len(t, got.Answers, 2)
	assert.Equal(t, "Rome", got.CorrectAnswer().Title)
}

func TestQuestionBank_CreateValidation(t *testing.T) {
	e := newEnv(t)
	part := e.part(t, "Intro", 1, 1)

	tests := []struct {
		name  string
		in    service.QuestionInput
		field string
	}{
		{"both answer forms", service.QuestionInput{
			Title: "q", PartID: &part.ID,
			Answers: []question.AnswerInput{{Title: "a"}}, AnswersInput: []string{"!a"},
		}, "answers"},
		{"two correct", service.QuestionInput{Title: "q", PartID: &part.ID, AnswersInput: []string{"!a", "!b"}}, "answers"},
		{"blank title", service.QuestionInput{Title: "  ", PartID: &part.ID}, "title"},
		{"difficulty", service.QuestionInput{Title: "q", Difficulty: 9, PartID: &part.ID}, "difficulty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.bank.Create(context.Background(), e.author, tt.in)
			var ve *service.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestQuestionBank_Forbidden(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	part := e.part(t, "Intro", 1, 1)
	e.grant(t, e.student)

	_, err := e.bank.Create(ctx, e.student, service.QuestionInput{Title: "q", PartID: &part.ID})
	assert.ErrorIs(t, err, service.ErrForbidden)

	_, err = e.bank.Create(ctx, e.author, service.QuestionInput{Title: "unattached"})
	assert.ErrorIs(t, err, service.ErrForbidden)

	q := e.question(t, part.ID, "mine", 1, "!a")
	assert.ErrorIs(t, e.bank.Delete(ctx, e.student, q.ID), service.ErrForbidden)
	_, err = e.bank.Get(ctx, e.student, q.ID)
	assert.ErrorIs(t, err, service.ErrForbidden)
}

func TestQuestionBank_UpdateKeepsOrReplacesAnswers(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	part := e.part(t, "Intro", 1, 1)
	q := e.question(t, part.ID, "original", 1, "!a", "b")

	kept, err := e.bank.Update(ctx, e.author, q.ID, service.QuestionInput{Title: "renamed", Difficulty: 4, PartID: &part.ID})
	require.NoError(t, err)
	assert.Equal(t, "renamed", kept.Title)
	stored, err := e.store.GetQuestion(ctx, q.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Answers, 2)

	_, err = e.bank.Update(ctx, e.author, q.ID, service.QuestionInput{
		Title: "renamed", PartID: &part.ID, AnswersInput: []string{"x", "y", "!z"},
	})
	require.NoError(t, err)
	stored, err = e.store.GetQuestion(ctx, q.ID)
	require.NoError(t, err)
	require.Len(t, stored.Answers, 3)
	assert.Equal(t, "z", stored.CorrectAnswer().Title)
}

func TestQuestionBank_Delete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	part := e.part(t, "Intro", 1, 1)
	q := e.question(t, part.ID, "gone", 1, "!a")

	require.NoError(t, e.bank.Delete(ctx, e.author, q.ID))
	_, err := e.bank.Get(ctx, e.author, q.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.ErrorIs(t, e.bank.Delete(ctx, e.author, q.ID), service.ErrNotFound)
}
