// Package talks provides the HTTP client for the skill-sharing talk server.
//
// # Overview
//
// The server holds a single shared list of talks. Each talk has a title
// (its key), a presenter, a summary and an ordered list of comments. This
// package is the only code that speaks HTTP to that server; every other
// package works with the Talk and Comment types defined here.
//
// # Architecture
//
//   - client.go: request envelope (Do), long-poll fetch and the three mutations
//   - errors.go: HTTPError and TransportError, the two failure kinds
//   - types.go: wire types and list decoding
//
// # API Endpoints
//
//   - GET /talks: full talk list with an ETag. When the request carries
//     If-None-Match and Prefer: wait=N the server holds the request until
//     the list changes or N seconds pass, then answers 304.
//   - PUT /talks/{title}: {"presenter", "summary"}
//   - DELETE /talks/{title}
//   - POST /talks/{title}/comments: {"author", "message"}
//
// Titles are escaped as a single path segment, so "a b/c" becomes
// /talks/a%20b%2Fc. The client performs no validation of titles or
// messages; empty and duplicate titles are the server's concern.
//
// # Request Envelope
//
// Client.Do is the single request path. It returns the raw response for
// any 2xx or 304 status and fails otherwise:
//
//   - *TransportError: no response arrived (connection refused, DNS,
//     transport timeout, cancelled context)
//   - *HTTPError: a response arrived with any other status
//
// Both support errors.As. Do never retries; the long-poll loop and the
// effect executor decide what a failure means.
//
// # Usage Example
//
//	client, err := talks.NewClient("localhost:8000", 2*time.Minute)
//	if err != nil {
//		return err
//	}
//
//	poll, err := client.FetchTalks(ctx, talks.Conditional{ETag: tag, Wait: 90 * time.Second})
//	if err != nil {
//		return err
//	}
//	if !poll.NotModified {
//		tag = poll.ETag
//		render(poll.Talks)
//	}
//
// # Timeouts
//
// NewClient takes the transport timeout. A long-poll client must use a
// timeout longer than the server-side wait, otherwise every quiet poll
// turns into a transport failure.
//
// # Thread Safety
//
// Client is safe for concurrent use; the underlying http.Client pools
// connections.
package talks
