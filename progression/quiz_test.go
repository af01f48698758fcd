package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fiveQuestions() []Question {
	qs := make([]Question, 5)
	for i := range qs {
		qs[i] = Question{
			Prompt:       "q",
			Options:      []string{"a", "b", "c"},
			CorrectIndex: 1,
		}
	}
	return qs
}

func TestEvaluateQuiz_PassAtThreshold(t *testing.T) {
	// 3 of 5 correct at the default 0.6 threshold is exactly a pass.
	result, err := EvaluateQuiz(QuizSubmission{
		Questions: fiveQuestions(),
		Answers:   []int{1, 1, 1, 0, 2},
	})
	require.NoError(t, err)

	assert.Equal(t, 0.6, result.Score)
	assert.True(t, result.Passed)
	assert.Equal(t, []bool{true, true, true, false, false}, result.PerQuestion)
}

func TestEvaluateQuiz_FailBelowThreshold(t *testing.T) {
	result, err := EvaluateQuiz(QuizSubmission{
		Questions: fiveQuestions(),
		Answers:   []int{1, 1, 0, 0, 2},
	})
	require.NoError(t, err)

	assert.Equal(t, 0.4, result.Score)
	assert.False(t, result.Passed)
}

func TestEvaluateQuiz_CustomThreshold(t *testing.T) {
	result, err := EvaluateQuiz(QuizSubmission{
		Questions:     fiveQuestions(),
		Answers:       []int{1, 1, 1, 0, 2},
		PassThreshold: 0.8,
	})
	require.NoError(t, err)

	assert.Equal(t, 0.6, result.Score)
	assert.False(t, result.Passed)
}

func TestEvaluateQuiz_EmptyQuiz(t *testing.T) {
	_, err := EvaluateQuiz(QuizSubmission{})
	assert.ErrorIs(t, err, ErrEmptyQuiz)
}

func TestEvaluateQuiz_MalformedSubmission(t *testing.T) {
	_, err := EvaluateQuiz(QuizSubmission{
		Questions: fiveQuestions(),
		Answers:   []int{1, 1},
	})
	assert.ErrorIs(t, err, ErrMalformedSubmission)
}

func TestEvaluateQuiz_UnansweredCountsIncorrect(t *testing.T) {
	result, err := EvaluateQuiz(QuizSubmission{
		Questions: fiveQuestions(),
		Answers:   []int{1, 1, 1, 1, NoAnswer},
	})
	require.NoError(t, err)

	assert.Equal(t, 0.8, result.Score)
	assert.False(t, result.PerQuestion[4])
}

func TestEvaluateExercise(t *testing.T) {
	checks := []ExerciseCheck{
		ContainsCheck("useState"),
		ContainsCheck("return"),
		RegexCheck(`function\s+\w+`),
	}

	result, err := EvaluateExercise("function Counter() { const [n] = useState(0); return n }", checks, 0)
	require.NoError(t, err)

	assert.Equal(t, 1.0, result.Score)
	assert.True(t, result.Passed)
}

func TestEvaluateExercise_PartialScore(t *testing.T) {
	checks := []ExerciseCheck{
		ContainsCheck("useState"),
		ContainsCheck("useEffect"),
	}

	result, err := EvaluateExercise("const [n, setN] = useState(0)", checks, 0)
	require.NoError(t, err)

	assert.Equal(t, 0.5, result.Score)
	assert.False(t, result.Passed)
	assert.Equal(t, []bool{true, false}, result.PerQuestion)
}

func TestEvaluateExercise_NoChecks(t *testing.T) {
	_, err := EvaluateExercise("anything", nil, 0)
	assert.ErrorIs(t, err, ErrEmptyQuiz)
}

func TestContainsCheck_CaseInsensitive(t *testing.T) {
	check := ContainsCheck("  Hello ")
	assert.True(t, check("say hello world"))
	assert.False(t, check("goodbye"))
}

func TestRegexCheck_InvalidPatternNeverPasses(t *testing.T) {
	check := RegexCheck("([")
	assert.False(t, check("anything"))
}
