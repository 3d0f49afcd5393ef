package clients

import "fmt"

// ErrorKind separates failures of the call itself from failures the
// collaborator reported in an otherwise successful response.
type ErrorKind int

const (
	KindTransport ErrorKind = iota
	KindServer
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// SearchError is returned by MatchClient.Search for network failures,
// non-success statuses and undecodable bodies.
type SearchError struct {
	Message string
	Err     error
}

func (e *SearchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("search: %s: %v", e.Message, e.Err)
	}
	return "search: " + e.Message
}

func (e *SearchError) Unwrap() error { return e.Err }

// SubmitError is returned by ReviewClient.Rate. For KindServer, Message is
// the collaborator's error string verbatim.
type SubmitError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *SubmitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rate (%s): %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("rate (%s): %s", e.Kind, e.Message)
}

func (e *SubmitError) Unwrap() error { return e.Err }
