package validation

import (
	"sort"
	"strings"

	"github.com/ads6495/infrunta/internal/models"
)

// ValidateAnswer grades a raw learner answer against an exercise. It is
// pure and deterministic: no I/O, no state, safe to call from anywhere.
//
// The raw answer is a plain-text encoding whose syntax depends on the
// exercise kind: literal option text for choice kinds, space-joined
// tokens for WORD_ORDER, and comma- or pipe-separated "left:right"
// tokens for DRAG_MATCH.
func ValidateAnswer(exercise *models.Exercise, userAnswer string) bool {
	// An empty or all-whitespace answer is never correct, regardless of kind.
	if strings.TrimSpace(userAnswer) == "" {
		return false
	}

	normalizedUser := normalize(userAnswer)
	normalizedCorrect := normalize(exercise.CorrectAnswer)

	switch exercise.Type {
	case models.AudioImageMatch, models.WordUsageQuiz, models.ConversationResponse:
		// Choice kinds: the caller sends the selected option's text.
		return normalizedUser == normalizedCorrect

	case models.SpellingBank, models.SyllableAssembly, models.AudioFillBlank,
		models.AudioTyping, models.PronunciationChallenge:
		// Text assembly/input kinds: exact match after normalization.
		// Pronunciation grading is a placeholder equality check; no audio
		// scoring happens here.
		return normalizedUser == normalizedCorrect

	case models.WordOrder:
		return equalTokenOrder(normalizedCorrect, normalizedUser)

	case models.DragMatch:
		return equalPairSets(exercise, normalizedUser)

	case models.FindMistake:
		// Selected mistake positions arrive comma-joined.
		return normalizedUser == normalizedCorrect

	case models.AlphabetOverview:
		// Exploratory kind: any non-empty answer counts as engagement.
		return true

	default:
		// Unrecognized kinds degrade to plain equality rather than failing.
		return normalizedUser == normalizedCorrect
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// equalTokenOrder compares whitespace-separated tokens positionally.
// Order matters: set equality is not enough for WORD_ORDER.
func equalTokenOrder(correct, user string) bool {
	correctWords := strings.Fields(correct)
	userWords := strings.Fields(user)
	if len(userWords) != len(correctWords) {
		return false
	}
	for i := range correctWords {
		if userWords[i] != correctWords[i] {
			return false
		}
	}
	return true
}

// equalPairSets compares the learner's "left:right" tokens against the
// exercise's authored match pairs. The authored pairs are authoritative;
// the stored correct-answer string is ignored so it cannot drift out of
// sync with the structured data. Pair order and separator style (',' or
// '|') are irrelevant.
func equalPairSets(exercise *models.Exercise, user string) bool {
	correct := make([]string, 0)
	for _, p := range exercise.Pairs() {
		correct = append(correct, normalize(p.Content)+":"+normalize(*p.PairWith))
	}
	sort.Strings(correct)

	userPairs := splitPairs(user)
	sort.Strings(userPairs)

	if len(userPairs) != len(correct) {
		return false
	}
	for i := range correct {
		if userPairs[i] != correct[i] {
			return false
		}
	}
	return true
}

func splitPairs(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '|'
	})

	pairs := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sides := strings.Split(part, ":")
		if len(sides) != 2 {
			continue
		}
		left := strings.TrimSpace(sides[0])
		right := strings.TrimSpace(sides[1])
		pairs = append(pairs, left+":"+right)
	}
	return pairs
}
