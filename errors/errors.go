package errors

import "fmt"

var (
	// ErrAuth covers credential issuance and refresh failures, including
	// malformed responses from the token endpoint.
	ErrAuth = fmt.Errorf("credential issuance failed")

	// ErrChannel is returned when the backend rejects a subscription open
	// (bad credential, unknown topic).
	ErrChannel = fmt.Errorf("subscription rejected")

	// ErrStream is a transport failure on an active subscription. The
	// subscription is closed and must be reopened by its owner.
	ErrStream = fmt.Errorf("stream failure")

	// ErrProtocol marks a malformed event on an active stream. It is always
	// wrapped into ErrStream when the stream terminates on it.
	ErrProtocol = fmt.Errorf("malformed stream event")

	// ErrPublish is returned when a send is rejected or no valid credential
	// could be obtained for it.
	ErrPublish = fmt.Errorf("publish rejected")

	// ErrHistory is a snapshot fetch failure.
	ErrHistory = fmt.Errorf("history fetch failed")

	// ErrCatalog is a language catalog fetch failure.
	ErrCatalog = fmt.Errorf("language catalog fetch failed")

	ErrSubscriptionExists = fmt.Errorf("subscription already open")
	ErrSwitchSuperseded   = fmt.Errorf("language switch superseded")
	ErrNoCredential       = fmt.Errorf("no credential issued yet")
	ErrNotAnImage         = fmt.Errorf("payload is not an image")
	ErrWorkerPanic        = fmt.Errorf("worker panic")
)
