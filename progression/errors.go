package progression

import "errors"

// Validation failures, never crashes. Each engine call returns either a
// fully consistent new state or one of these with the old state untouched.
var (
	ErrInvalidSection      = errors.New("section is not part of the lesson's declared set")
	ErrEmptyQuiz           = errors.New("quiz has no questions")
	ErrMalformedSubmission = errors.New("answer count does not match question count")
	ErrStaleEvent          = errors.New("event date precedes last recorded activity")
	ErrInvalidXPAmount     = errors.New("xp amount must not be negative")
	ErrInvalidThreshold    = errors.New("level threshold must be positive")
)
