package spec

import "fmt"

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %s", e.message)
}

var (
	// lexical errors
	synErrInvalidToken = newSyntaxError("invalid token")

	// syntax errors
	synErrNoProduction     = newSyntaxError("a grammar must have at least one production")
	synErrNoProductionName = newSyntaxError("a production name is missing")
	synErrNoArrow          = newSyntaxError("an arrow must precede alternatives")
	synErrNoNewline        = newSyntaxError("a production must end with a newline")
	synErrEmptyAlternative = newSyntaxError("an alternative must have at least one symbol; use 'e' for the empty alternative")
	synErrEpsilonNotAlone  = newSyntaxError("the epsilon marker 'e' cannot be mixed with other symbols in an alternative")
)
