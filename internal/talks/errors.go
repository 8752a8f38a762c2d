package talks

import "fmt"

// HTTPError reports a response whose status was neither 2xx nor 304.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("api %s %s returned status %d", e.Method, e.URL, e.StatusCode)
}

// TransportError wraps failures that happened before a status was received:
// refused connections, DNS, timeouts and cancelled contexts.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("execute request %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
