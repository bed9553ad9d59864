package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examhall/backend/internal/domain/quiz"
	"github.com/examhall/backend/internal/service"
)

// finalTest builds a subject with two parts, one question each:
// difficulty 3 in the first part, difficulty 2 in the second.
func finalTest(t *testing.T, e *env) *quiz.Test {
	t.Helper()
	p1 := e.part(t, "Part1", 1, 1)
	p2 := e.part(t, "Part2", 2, 1)
	e.question(t, p1.ID, "heavy", 3, "!right", "wrong")
	e.question(t, p2.ID, "light", 2, "!right", "wrong")

	test, err := e.builder.Generate(context.Background(), e.student.ID, quiz.TypeFinal, e.subject.ID)
	require.NoError(t, err)
	require.Len(t, test.Questions, 2)
	return test
}

func pick(qi quiz.QuestionInstance, correct bool) service.AnswerEntry {
	for _, ai := range qi.Answers {
		if ai.Correct == correct {
			return service.AnswerEntry{QuestionInstanceID: qi.ID, AnswerInstanceID: ai.ID}
		}
	}
	panic("no matching answer")
}

func TestSubmit_WeightedScore(t *testing.T) {
	e := newEnv(t)
	test := finalTest(t, e)

	graded, err := e.intake.Submit(context.Background(), test.ID, e.student.ID, []service.AnswerEntry{
		pick(test.Questions[0], true),
		pick(test.Questions[1], false),
	})
	require.NoError(t, err)
	assert.InDelta(t, 60.0, graded.Score, 1e-9)
	assert.True(t, graded.Scored())
	assert.True(t, graded.Questions[0].Correct)
	assert.False(t, graded.Questions[1].Correct)
	require.NotNil(t, graded.Questions[1].ChosenAnswer())
	assert.Equal(t, "wrong", graded.Questions[1].ChosenAnswer().Title)
	assert.Equal(t, "right", graded.Questions[1].CorrectAnswer().Title)
}

func TestSubmit_UnansweredCountsInDenominator(t *testing.T) {
	e := newEnv(t)
	test := finalTest(t, e)

	graded, err := e.intake.Submit(context.Background(), test.ID, e.student.ID, []service.AnswerEntry{
		pick(test.Questions[0], true),
	})
	require.NoError(t, err)
	assert.InDelta(t, 60.0, graded.Score, 1e-9)
	assert.Nil(t, graded.Questions[1].ChosenAnswerID)
	assert.False(t, graded.Questions[1].Correct)
}

func TestSubmit_ReanswerOverwrites(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	test := finalTest(t, e)

	_, err := e.intake.Submit(ctx, test.ID, e.student.ID, []service.AnswerEntry{
		pick(test.Questions[0], true),
		pick(test.Questions[1], true),
	})
	require.NoError(t, err)

	graded, err := e.intake.Submit(ctx, test.ID, e.student.ID, []service.AnswerEntry{
		pick(test.Questions[0], false),
	})
	require.NoError(t, err)
	assert.InDelta(t, 40.0, graded.Score, 1e-9)
	assert.False(t, graded.Questions[0].Correct)
	assert.True(t, graded.Questions[1].Correct)
}

func TestSubmit_CrossTestEntryRejectsWholeBatch(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	test := finalTest(t, e)
	other, err := e.builder.Generate(ctx, e.student.ID, quiz.TypeFinal, e.subject.ID)
	require.NoError(t, err)

	_, err = e.intake.Submit(ctx, test.ID, e.student.ID, []service.AnswerEntry{
		pick(test.Questions[0], true),
		pick(other.Questions[1], true),
	})
	assert.ErrorIs(t, err, service.ErrNotFound)

	stored, err := e.store.GetTest(ctx, test.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Questions[0].ChosenAnswerID, "earlier entries must not be applied")
	assert.False(t, stored.Scored())
}

func TestSubmit_AnswerOfAnotherQuestion(t *testing.T) {
	e := newEnv(t)
	test := finalTest(t, e)

	_, err := e.intake.Submit(context.Background(), test.ID, e.student.ID, []service.AnswerEntry{{
		QuestionInstanceID: test.Questions[0].ID,
		AnswerInstanceID:   test.Questions[1].Answers[0].ID,
	}})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestSubmit_UnknownTest(t *testing.T) {
	e := newEnv(t)

	_, err := e.intake.Submit(context.Background(), "missing", e.student.ID, []service.AnswerEntry{
		{QuestionInstanceID: "q", AnswerInstanceID: "a"},
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestSubmit_OnlyOwner(t *testing.T) {
	e := newEnv(t)
	test := finalTest(t, e)

	_, err := e.intake.Submit(context.Background(), test.ID, e.author.ID, []service.AnswerEntry{
		pick(test.Questions[0], true),
	})
	assert.ErrorIs(t, err, service.ErrForbidden)
}

func TestSubmit_Validation(t *testing.T) {
	e := newEnv(t)
	test := finalTest(t, e)

	tests := []struct {
		name    string
		entries []service.AnswerEntry
		index   int
		field   string
	}{
		{"empty batch", nil, -1, "answers"},
		{"missing question", []service.AnswerEntry{pick(test.Questions[0], true), {AnswerInstanceID: "a"}}, 1, "question_instance_id"},
		{"missing answer", []service.AnswerEntry{{QuestionInstanceID: "q"}}, 0, "answer_instance_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.intake.Submit(context.Background(), test.ID, e.student.ID, tt.entries)
			var ve *service.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.index, ve.Index)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestSubmit_ConcurrentBatchesStayConsistent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	test := finalTest(t, e)

	batches := [][]service.AnswerEntry{
		{pick(test.Questions[0], true), pick(test.Questions[1], true)},
		{pick(test.Questions[0], false), pick(test.Questions[1], false)},
	}
	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = e.intake.Submit(ctx, test.ID, e.student.ID, batches[i%2])
		}()
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	stored, err := e.store.GetTest(ctx, test.ID)
	require.NoError(t, err)
	allRight := stored.Questions[0].Correct && stored.Questions[1].Correct
	allWrong := !stored.Questions[0].Correct && !stored.Questions[1].Correct
	assert.True(t, allRight || allWrong, "a score never mixes two batches")
	if allRight {
		assert.InDelta(t, 100.0, stored.Score, 1e-9)
	} else {
		assert.Zero(t, stored.Score)
	}
}
