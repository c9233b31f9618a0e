package apperr

import "fmt"

// TransportError means the search service could not be reached at all.
// It is fatal for the run.
type TransportError struct {
	Server string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("cannot reach srcmap at %s: %v", e.Server, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func NewTransport(server string, err error) *TransportError {
	return &TransportError{Server: server, Err: err}
}

// ProtocolError means the service answered with a non-2xx status.
// It is fatal for the run.
type ProtocolError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("HTTP %d from %s: %s", e.Status, e.Endpoint, e.Body)
}

func NewProtocol(endpoint string, status int, body string) *ProtocolError {
	return &ProtocolError{Endpoint: endpoint, Status: status, Body: body}
}

// DataError means required input is missing or malformed: an absent
// catalogue, an empty dataset, an unknown case id. Reported before any
// scoring begins.
type DataError struct {
	Message string
	Err     error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DataError) Unwrap() error {
	return e.Err
}

func NewData(msg string) *DataError {
	return &DataError{Message: msg}
}

func NewDataWrap(msg string, err error) *DataError {
	return &DataError{Message: msg, Err: err}
}
