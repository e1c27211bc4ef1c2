package engagement

import "errors"

var (
	ErrAlreadyReviewed = errors.New("you already reviewed this game")
	ErrReviewNotFound  = errors.New("review not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrGameNotFound    = errors.New("game not found")
	ErrAuthorNameTaken = errors.New("username belongs to a non-system account")
)

// ValidationError reports malformed input. Nothing is persisted when one is
// returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
