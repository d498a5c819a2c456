package weather

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Failure taxonomy for a weather query. Callers match with errors.Is.
//
// Two "no result" outcomes intentionally do not appear here: an identifier the
// geocoder cannot match, and the feed's embedded error sentinel. Both are
// normal outcomes delivered as a nil Report with a nil error; ErrProvider only
// travels between the parser and the pipeline so the causes stay separable.
var (
	// ErrNetworkUnavailable means the pre-flight reachability check failed;
	// no network call was attempted.
	ErrNetworkUnavailable = errors.New("network is not available")

	// ErrLocationNotFound means the device location provider produced no fix.
	ErrLocationNotFound = errors.New("location cannot be found")

	// ErrConnection is any protocol or IO fault on an outbound call.
	ErrConnection = errors.New("connection failed")

	// ErrTimeout means the connect or socket budget was exceeded.
	ErrTimeout = errors.New("connection timed out")

	// ErrParse covers malformed XML, a missing expected element or attribute,
	// a non-numeric numeric field, or a short forecast list.
	ErrParse = errors.New("feed parsing failed")

	// ErrProvider marks the feed's own error sentinel: the identifier was
	// valid syntax but the provider has no data for it.
	ErrProvider = errors.New("provider reported an error document")
)

// WrapNetErr classifies a transport-level error as ErrTimeout or ErrConnection,
// preserving the cause.
func WrapNetErr(err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrConnection, err)
}
