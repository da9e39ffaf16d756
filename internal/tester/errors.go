package tester

import "fmt"

// ConnectError reports a failure to establish the TCP connection. The
// name deliberately avoids colliding with net's own error types.
type ConnectError struct {
	Addr string
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %v", e.Addr, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}
