package domain

import "errors"

var (
	// ErrInvalidRequest is returned when a required request parameter is missing or blank
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrTransportFailure is returned when the parts search request could not be sent
	// or its response body could not be read
	ErrTransportFailure = errors.New("TrustedParts API request failed")

	// ErrUpstreamFailure is returned when the parts search API answers with a non-success status
	ErrUpstreamFailure = errors.New("TrustedParts API returned an error")

	// ErrMalformedResponse is returned when a successful response body is not valid JSON
	ErrMalformedResponse = errors.New("TrustedParts API returned invalid JSON")

	// ErrRateLimited is returned when a client exceeds its request budget
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrWorkspaceNotFound is returned when a workspace file does not exist
	ErrWorkspaceNotFound = errors.New("workspace file not found")

	// ErrToolFailure is returned when an external tool (simulator, git) fails
	ErrToolFailure = errors.New("external tool failed")
)
