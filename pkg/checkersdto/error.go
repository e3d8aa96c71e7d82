package checkersdto

// DomainError is a command failure in presenter terms. Code is a message catalog
// key relative to "checkers.".
type DomainError struct {
	Code      string
	Message   string
	Retryable bool
}

func (e DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return "checkers service error"
}
