package textmood

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when the text is empty or whitespace only.
	ErrEmptyInput = errors.New("text is empty")

	// ErrScoringUnavailable is matched by every *ScoringError.
	ErrScoringUnavailable = errors.New("sentiment scoring unavailable")

	// ErrInvalidOptions is returned for out-of-range thresholds or sizes.
	ErrInvalidOptions = errors.New("invalid analysis options")
)

var errNonFiniteScore = errors.New("scorer returned a non-finite score")

// TranslationError is a recoverable translation failure. The pipeline keeps
// going with the original text when it sees one.
type TranslationError struct {
	Target string
	Err    error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("translation to %q failed: %v", e.Target, e.Err)
}

func (e *TranslationError) Unwrap() error {
	return e.Err
}

// ScoringError reports a failed scorer. No report is produced, but the word
// frequencies, which do not depend on the scorer, are still attached.
type ScoringError struct {
	Err   error
	Words []WordFrequency
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("%v: %v", ErrScoringUnavailable, e.Err)
}

func (e *ScoringError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrScoringUnavailable) match.
func (e *ScoringError) Is(target error) bool {
	return target == ErrScoringUnavailable
}
