package errs

import "fmt"

// AuthError means the token exchange failed or the supplied credentials are
// incomplete. Body holds the raw token-endpoint response when one was received.
type AuthError struct {
	Reason string
	Body   string
}

func (e *AuthError) Error() string {
	if e.Body == "" {
		return "auth: " + e.Reason
	}
	return fmt.Sprintf("auth: %s: %s", e.Reason, e.Body)
}

// LocalFileError means the source file could not be read before any network
// call was made.
type LocalFileError struct {
	Path string
	Err  error
}

func (e *LocalFileError) Error() string {
	return fmt.Sprintf("local file %s: %v", e.Path, e.Err)
}

func (e *LocalFileError) Unwrap() error {
	return e.Err
}

// RemoteStoreError means a folder lookup, folder creation, or listing call was
// rejected by the store. Body is the raw remote response.
type RemoteStoreError struct {
	Op     string
	Status int
	Body   string
}

func (e *RemoteStoreError) Error() string {
	return fmt.Sprintf("remote store: %s: status %d: %s", e.Op, e.Status, e.Body)
}

// UploadError means the file-creation call itself was rejected.
type UploadError struct {
	Status int
	Body   string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload: status %d: %s", e.Status, e.Body)
}

// NetworkError is a transport-level failure. It is never retried here; retry
// policy belongs to the caller.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
