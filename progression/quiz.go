package progression

import (
	"regexp"
	"strings"
)

// NoAnswer is the sentinel for a question the learner left unanswered.
// It always scores as incorrect, never as a skip.
const NoAnswer = -1

// DefaultPassThreshold is the minimum fractional score for a submission
// to count as section completion when the quiz does not set its own.
const DefaultPassThreshold = 0.6

type Question struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// QuizSubmission pairs a quiz's question set with the learner's chosen
// option index per question. Answers must be the same length as Questions.
type QuizSubmission struct {
	Questions     []Question `json:"questions"`
	Answers       []int      `json:"answers"`
	PassThreshold float64    `json:"pass_threshold,omitempty"`
}

type QuizResult struct {
	Score       float64 `json:"score"`
	Passed      bool    `json:"passed"`
	PerQuestion []bool  `json:"per_question"`
}

// EvaluateQuiz scores a submission. It rejects empty quizzes and
// submissions whose answer count does not match the question count;
// no partial scoring happens on rejection.
func EvaluateQuiz(sub QuizSubmission) (QuizResult, error) {
	if len(sub.Questions) == 0 {
		return QuizResult{}, ErrEmptyQuiz
	}
	if len(sub.Answers) != len(sub.Questions) {
		return QuizResult{}, ErrMalformedSubmission
	}

	threshold := sub.PassThreshold
	if threshold == 0 {
		threshold = DefaultPassThreshold
	}

	perQuestion := make([]bool, len(sub.Questions))
	correct := 0
	for i, q := range sub.Questions {
		if sub.Answers[i] != NoAnswer && sub.Answers[i] == q.CorrectIndex {
			perQuestion[i] = true
			correct++
		}
	}

	score := float64(correct) / float64(len(sub.Questions))
	return QuizResult{
		Score:       score,
		Passed:      score >= threshold,
		PerQuestion: perQuestion,
	}, nil
}

// ExerciseCheck validates one aspect of an exercise answer. The exercise
// definition supplies the checks; the engine never inspects answer content
// itself.
type ExerciseCheck func(answer string) bool

// EvaluateExercise scores a free-form answer against the exercise's
// checks. Each check counts like one question: the score is the fraction
// of checks satisfied.
func EvaluateExercise(answer string, checks []ExerciseCheck, passThreshold float64) (QuizResult, error) {
	if len(checks) == 0 {
		return QuizResult{}, ErrEmptyQuiz
	}

	if passThreshold == 0 {
		passThreshold = DefaultPassThreshold
	}

	perCheck := make([]bool, len(checks))
	passed := 0
	for i, check := range checks {
		if check(answer) {
			perCheck[i] = true
			passed++
		}
	}

	score := float64(passed) / float64(len(checks))
	return QuizResult{
		Score:       score,
		Passed:      score >= passThreshold,
		PerQuestion: perCheck,
	}, nil
}

// ContainsCheck matches answers containing the given fragment,
// case-insensitively and ignoring surrounding whitespace.
func ContainsCheck(fragment string) ExerciseCheck {
	want := strings.ToLower(strings.TrimSpace(fragment))
	return func(answer string) bool {
		return strings.Contains(strings.ToLower(answer), want)
	}
}

// RegexCheck matches answers against a pattern. An invalid pattern yields
// a check that never passes rather than a panic at evaluation time.
func RegexCheck(pattern string) ExerciseCheck {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return func(string) bool { return false }
	}
	return re.MatchString
}
