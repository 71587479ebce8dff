package models

// ErrorData represents the structure used by error templating.
type ErrorData struct {
	Request    *Request
	Error      error
	StatusText string
	Status     int
}

// EchoData represents the structure used by echo templating.
type EchoData struct {
	Request *Request
}

// HeaderData represents the structure used by header templating.
type HeaderData struct {
	Request *Request
	Status  int
}
