package shared

const (
	UserID = "user_id"

	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeFillBlank      = "fill_blank"

	ExerciseRuleContains = "contains"
	ExerciseRuleRegex    = "regex"

	MediaKindBadgeIcon       = "badge_icon"
	MediaKindLessonThumbnail = "lesson_thumbnail"

	LeaderboardKey = "leaderboard:scores"
)
