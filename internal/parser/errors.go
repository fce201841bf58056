package parser

// Error codes surfaced to callers for parse failures.
const (
	CodeFileTooLarge        = "FILE_TOO_LARGE"
	CodeUnsupportedFormat   = "UNSUPPORTED_FORMAT"
	CodeInsufficientContent = "INSUFFICIENT_CONTENT"
	CodePDFParseFailed      = "PDF_PARSE_FAILED"
	CodeDOCXParseFailed     = "DOCX_PARSE_FAILED"
)

// ParseError is a structured parse failure with a remediation hint.
type ParseError struct {
	Code    string
	Message string
	Hint    string
}

func (e *ParseError) Error() string {
	if e.Hint == "" {
		return e.Code + ": " + e.Message
	}
	return e.Code + ": " + e.Message + " (" + e.Hint + ")"
}

func newParseError(code, message, hint string) *ParseError {
	return &ParseError{Code: code, Message: message, Hint: hint}
}
