// internal/domain/homework/verdict.go
package homework

import "fmt"

// Status codes returned by the review API.
const (
	StatusApproved  = "approved"
	StatusReviewing = "reviewing"
	StatusRejected  = "rejected"
)

const (
	fieldHomeworkName = "homework_name"
	fieldStatus       = "status"
)

// Verdicts maps a status code to the phrase shown to the user.
type Verdicts map[string]string

// DefaultVerdicts returns the built-in status table.
func DefaultVerdicts() Verdicts {
	return Verdicts{
		StatusApproved:  "Reviewer liked the work!",
		StatusReviewing: "Work taken for review.",
		StatusRejected:  "Reviewer found issues.",
	}
}

// ParseStatus renders the verdict message for a single homework record.
func (v Verdicts) ParseStatus(record any) (string, error) {
	hw, ok := record.(map[string]any)
	if !ok {
		return "", fmt.Errorf("%w: homework record is %T, expected an object", ErrType, record)
	}

	name, err := stringField(hw, fieldHomeworkName)
	if err != nil {
		return "", err
	}
	status, err := stringField(hw, fieldStatus)
	if err != nil {
		return "", err
	}

	phrase, ok := v[status]
	if !ok {
		return "", fmt.Errorf("%w: unknown homework status %q", ErrValue, status)
	}
	return fmt.Sprintf(`Status changed for "%s". %s`, name, phrase), nil
}

// MaxFailureMessageRunes keeps failure reports well under Telegram's
// 4096-character message limit.
const MaxFailureMessageRunes = 1000

// FailureMessage renders the text sent to the operator when a cycle fails.
// Long error texts, such as HTML error pages, are cut to MaxFailureMessageRunes.
func FailureMessage(err error) string {
	msg := []rune(fmt.Sprintf("Program failure: %v", err))
	if len(msg) <= MaxFailureMessageRunes {
		return string(msg)
	}
	return string(msg[:MaxFailureMessageRunes-1]) + "…"
}

func stringField(hw map[string]any, key string) (string, error) {
	value, ok := hw[key]
	if !ok {
		return "", fmt.Errorf("%w: homework record has no %q field", ErrKey, key)
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is %T, expected a string", ErrType, key, value)
	}
	return s, nil
}
