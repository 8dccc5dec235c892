package driver

// SyntaxError records where a parse rejected its input and what the driver
// would have accepted at that point.
type SyntaxError struct {
	Row               int
	Col               int
	Message           string
	Token             *Token
	ExpectedTerminals []string
}
