// Package publish runs the publish pipeline: it commits the post list to the
// GitHub content repository and submits the published URLs for indexing.
package publish

import "errors"

// Validation errors. They are returned before any remote call is made.
var (
	// ErrMissingToken indicates that no GitHub access token was supplied.
	ErrMissingToken = errors.New("a GitHub access token is required")

	// ErrEmptyContent indicates an empty post list without AllowEmpty.
	ErrEmptyContent = errors.New("the post list is empty: refusing to overwrite the remote content without allowEmpty")

	// ErrInvalidArtifact indicates a secondary artifact without a path or content.
	ErrInvalidArtifact = errors.New("artifact path and content are required")
)

// Failure classifies why a run did not succeed.
type Failure int

const (
	FailureNone Failure = iota
	// FailureAuth is a 401: the token is wrong, expired or lacks the repo scope.
	FailureAuth
	// FailureForbidden is a 403: the token cannot write to the repository.
	FailureForbidden
	// FailureTimeout means a remote call exceeded its deadline.
	FailureTimeout
	// FailureConflict means the remote file changed after its revision was read.
	FailureConflict
	// FailureRemote is any other remote failure.
	FailureRemote
	// FailureVerification means the write could not be confirmed.
	FailureVerification
	// FailureInternal is a local error after validation, e.g. serialization.
	FailureInternal
)

// String implements fmt.Stringer.
func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureAuth:
		return "auth"
	case FailureForbidden:
		return "forbidden"
	case FailureTimeout:
		return "timeout"
	case FailureConflict:
		return "conflict"
	case FailureRemote:
		return "remote"
	case FailureVerification:
		return "verification"
	case FailureInternal:
		return "internal"
	default:
		return "unknown"
	}
}
