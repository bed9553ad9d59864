package quiz_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examhall/backend/internal/domain/question"
	"github.com/examhall/backend/internal/domain/quiz"
	"github.com/examhall/backend/internal/domain/subject"
)

// bank builds a part with n questions, each with answers options where
// the first option is correct.
func bank(partID string, quota, n, answers, difficulty int) quiz.PartBank {
	pid := partID
	b := quiz.PartBank{Part: subject.Part{ID: partID, Title: "Part " + partID, QuestionsPerTest: quota}}
	for i := 0; i < n; i++ {
		q := question.Question{
			ID:         fmt.Sprintf("%s-q%d", partID, i),
			PartID:     &pid,
			Title:      fmt.Sprintf("Question %d of %s", i, partID),
			Difficulty: difficulty,
		}
		for j := 0; j < answers; j++ {
			q.Answers = append(q.Answers, question.Answer{
				ID:         fmt.Sprintf("%s-a%d", q.ID, j),
				QuestionID: q.ID,
				Title:      fmt.Sprintf("Option %d", j),
				Correct:    j == 0,
				Position:   j + 1,
			})
		}
		b.Questions = append(b.Questions, q)
	}
	return b
}

func TestNewIntermediate_SamplingBound(t *testing.T) {
	tests := []struct {
		name     string
		n, quota int
		want     int
	}{
		{"quota below pool", 10, 4, 4},
		{"quota above pool", 3, 10, 3},
		{"empty part", 0, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := bank("p1", tt.quota, tt.n, 3, 1)
			test := quiz.NewIntermediate("u1", b, seeded(1))

			require.NoError(t, test.Validate())
			assert.Equal(t, quiz.TypeIntermediate, test.Type)
			assert.Equal(t, "Part p1", test.Topic)
			require.Len(t, test.Questions, tt.want)

			seen := map[string]bool{}
			for _, qi := range test.Questions {
				assert.False(t, seen[qi.QuestionID], "question sampled twice")
				seen[qi.QuestionID] = true
				assert.Equal(t, test.ID, qi.TestID)
			}
		})
	}
}

func TestNewIntermediate_OrdinalsSequential(t *testing.T) {
	test := quiz.NewIntermediate("u1", bank("p1", 5, 8, 4, 1), seeded(9))

	for i, qi := range test.Questions {
		assert.Equal(t, i+1, qi.Ordinal)
		for j, ai := range qi.Answers {
			assert.Equal(t, j+1, ai.Ordinal)
			assert.Equal(t, qi.ID, ai.QuestionInstanceID)
		}
	}
}

func TestNewIntermediate_AnswerCompleteness(t *testing.T) {
	b := bank("p1", 3, 3, 4, 1)
	test := quiz.NewIntermediate("u1", b, seeded(5))

	source := map[string]question.Question{}
	for _, q := range b.Questions {
		source[q.ID] = q
	}
	for _, qi := range test.Questions {
		q := source[qi.QuestionID]
		require.Len(t, qi.Answers, len(q.Answers))
		var got, want []string
		for _, ai := range qi.Answers {
			got = append(got, ai.AnswerID)
		}
		for _, a := range q.Answers {
			want = append(want, a.ID)
		}
		assert.ElementsMatch(t, want, got)
	}
}

func TestNewIntermediate_QuestionWithoutAnswers(t *testing.T) {
	test := quiz.NewIntermediate("u1", bank("p1", 2, 2, 0, 1), seeded(1))

	require.Len(t, test.Questions, 2)
	for _, qi := range test.Questions {
		assert.Empty(t, qi.Answers)
	}
}

func TestNewIntermediate_SnapshotIsolation(t *testing.T) {
	b := bank("p1", 1, 1, 3, 2)
	test := quiz.NewIntermediate("u1", b, seeded(1))

	// Editing the bank afterwards must not leak into the test.
	b.Questions[0].Title = "edited"
	b.Questions[0].Difficulty = 5
	b.Questions[0].Answers = b.Questions[0].Answers[:1]

	qi := test.Questions[0]
	assert.Equal(t, "Question 0 of p1", qi.Title)
	assert.Equal(t, 2, qi.Difficulty)
	assert.Len(t, qi.Answers, 3)
}

func TestNewFinal_AggregatesParts(t *testing.T) {
	subj := subject.Subject{ID: "s1", Title: "Physics"}
	banks := []quiz.PartBank{
		bank("p1", 2, 5, 3, 1), // min(5,2) = 2
		bank("p2", 4, 3, 3, 1), // min(3,4) = 3
		bank("p3", 3, 0, 3, 1), // empty part contributes nothing
	}
	test := quiz.NewFinal("u1", subj, banks, seeded(2))

	require.NoError(t, test.Validate())
	assert.Equal(t, "Physics", test.Topic)
	require.Len(t, test.Questions, 5)
	for i, qi := range test.Questions {
		assert.Equal(t, i+1, qi.Ordinal, "ordinals continue across parts")
	}
	// Part iteration order is preserved.
	assert.Contains(t, test.Questions[0].QuestionID, "p1-")
	assert.Contains(t, test.Questions[1].QuestionID, "p1-")
	assert.Contains(t, test.Questions[4].QuestionID, "p2-")
}

func TestValidate_Scope(t *testing.T) {
	p, s := "p", "s"
	tests := []struct {
		name string
		test quiz.Test
		want error
	}{
		{"intermediate ok", quiz.Test{Type: quiz.TypeIntermediate, PartID: &p}, nil},
		{"final ok", quiz.Test{Type: quiz.TypeFinal, SubjectID: &s}, nil},
		{"intermediate with subject", quiz.Test{Type: quiz.TypeIntermediate, PartID: &p, SubjectID: &s}, quiz.ErrInvalidScope},
		{"final without subject", quiz.Test{Type: quiz.TypeFinal}, quiz.ErrInvalidScope},
		{"unknown type", quiz.Test{Type: "weekly", PartID: &p}, quiz.ErrInvalidType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.test.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// gradedTest builds a test by hand: one question per difficulty, each
// with a correct option "c" and a wrong option "w".
func gradedTest(difficulties ...int) *quiz.Test {
	test := &quiz.Test{ID: "t1"}
	for i, d := range difficulties {
		qid := fmt.Sprintf("qi%d", i)
		test.Questions = append(test.Questions, quiz.QuestionInstance{
			ID:         qid,
			Ordinal:    i + 1,
			Difficulty: d,
			Answers: []quiz.AnswerInstance{
				{ID: qid + "-w", AnswerID: qid + "-wrong", Ordinal: 1, SourcePosition: 2},
				{ID: qid + "-c", AnswerID: qid + "-right", Ordinal: 2, Correct: true, SourcePosition: 1},
			},
		})
	}
	return test
}

func TestGrade_WeightedByDifficulty(t *testing.T) {
	test := gradedTest(3, 2)
	require.NoError(t, test.Choose("qi0", "qi0-c"))
	require.NoError(t, test.Choose("qi1", "qi1-w"))

	score := test.Grade()

	assert.Equal(t, 60.0, score)
	assert.Equal(t, 60.0, test.Score)
	assert.True(t, test.Questions[0].Correct)
	assert.False(t, test.Questions[1].Correct)
}

func TestGrade_Table(t *testing.T) {
	tests := []struct {
		name         string
		difficulties []int
		picks        map[string]string
		want         float64
	}{
		{"all correct", []int{1, 5}, map[string]string{"qi0": "qi0-c", "qi1": "qi1-c"}, 100},
		{"all wrong", []int{1, 5}, map[string]string{"qi0": "qi0-w", "qi1": "qi1-w"}, 0},
		{"heavy question right", []int{1, 4}, map[string]string{"qi0": "qi0-w", "qi1": "qi1-c"}, 80},
		{"unanswered counts in denominator", []int{2, 2}, map[string]string{"qi0": "qi0-c"}, 50},
		{"nothing answered", []int{3}, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test := gradedTest(tt.difficulties...)
			for q, a := range tt.picks {
				require.NoError(t, test.Choose(q, a))
			}
			assert.InDelta(t, tt.want, test.Grade(), 1e-9)
		})
	}
}

func TestGrade_EmptyTestScoresZero(t *testing.T) {
	test := &quiz.Test{ID: "t1"}
	assert.Equal(t, 0.0, test.Grade())
}

func TestGrade_NoCorrectOptionIsIncorrect(t *testing.T) {
	test := &quiz.Test{Questions: []quiz.QuestionInstance{{
		ID:         "qi0",
		Difficulty: 2,
		Answers:    []quiz.AnswerInstance{{ID: "x", AnswerID: "ax"}},
	}}}
	require.NoError(t, test.Choose("qi0", "x"))

	assert.Equal(t, 0.0, test.Grade())
	assert.False(t, test.Questions[0].Correct)
}

func TestGrade_MultipleCorrectLowestPosition(t *testing.T) {
	test := &quiz.Test{Questions: []quiz.QuestionInstance{{
		ID:         "qi0",
		Difficulty: 1,
		Answers: []quiz.AnswerInstance{
			{ID: "late", AnswerID: "a-late", Correct: true, SourcePosition: 3},
			{ID: "early", AnswerID: "a-early", Correct: true, SourcePosition: 1},
		},
	}}}

	require.NoError(t, test.Choose("qi0", "late"))
	assert.Equal(t, 0.0, test.Grade())

	require.NoError(t, test.Choose("qi0", "early"))
	assert.Equal(t, 100.0, test.Grade())
}

func TestChoose_Overwrites(t *testing.T) {
	test := gradedTest(1)
	require.NoError(t, test.Choose("qi0", "qi0-w"))
	require.NoError(t, test.Choose("qi0", "qi0-c"))

	assert.Equal(t, "qi0-right", *test.Questions[0].ChosenAnswerID)
	assert.Equal(t, "qi0-c", test.Questions[0].ChosenAnswer().ID)
	assert.Equal(t, 100.0, test.Grade())
}

func TestChoose_RejectsForeignIDs(t *testing.T) {
	test := gradedTest(1, 1)

	assert.ErrorIs(t, test.Choose("nope", "qi0-c"), quiz.ErrQuestionNotInTest)
	assert.ErrorIs(t, test.Choose("qi0", "qi1-c"), quiz.ErrAnswerNotForQuestion)
	assert.Nil(t, test.Questions[0].ChosenAnswerID)
}

func TestTypeLabel(t *testing.T) {
	assert.Equal(t, "Intermediate", quiz.TypeIntermediate.Label())
	assert.Equal(t, "Final", quiz.TypeFinal.Label())
	assert.False(t, quiz.Type("x").Valid())
}
