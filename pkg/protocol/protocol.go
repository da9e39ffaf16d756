package protocol

import (
	"fmt"
	"strings"
)

// Protocol constants for the rclusterd wire format. The server greets a
// fresh connection with a version banner, the client sends each payload
// behind a literal 3-byte marker, and the server answers every payload
// with a prefixed status line.
const (
	// PayloadMarker precedes every payload on the wire. It is a fixed
	// protocol constant, never negotiated.
	PayloadMarker = "BUF"

	// DefaultBanner is the greeting an rclusterd server is expected to
	// send immediately after accepting a connection.
	DefaultBanner = "+RCLUSTER Version v1.10"

	SuccessPrefix = "+RCLUSTER"
	ErrorPrefix   = "-RCLUSTER"
)

// Status classifies a server reply to a payload send.
type Status int

const (
	StatusSuccess Status = iota
	StatusRejected
	StatusUnknown
)

// NoAckError reports a greeting that did not match the expected banner.
type NoAckError struct {
	Got string
}

func (e *NoAckError) Error() string {
	return fmt.Sprintf("no acknowledgment from server: %q", e.Got)
}

// RejectedError reports an explicit error-prefixed reply from the server.
type RejectedError struct {
	Detail string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("server rejected payload: %s", e.Detail)
}

// ViolationError reports a reply that matched neither known prefix.
type ViolationError struct {
	Raw string
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("unexpected server response: %q", e.Raw)
}

// EncodePayload frames raw file bytes for transmission: the literal
// marker followed by the data. No length prefix, no terminator; the
// server delimits payloads by its own means.
func EncodePayload(data []byte) []byte {
	framed := make([]byte, 0, len(PayloadMarker)+len(data))
	framed = append(framed, PayloadMarker...)
	return append(framed, data...)
}

// ValidateBanner checks the server greeting against the expected banner.
// The comparison is exact byte equality, no trimming or prefix matching.
func ValidateBanner(got, want string) error {
	if got != want {
		return &NoAckError{Got: got}
	}
	return nil
}

// Classify inspects the reply to a payload send. A success-prefixed
// reply is StatusSuccess regardless of trailing content. An
// error-prefixed reply is StatusRejected with a RejectedError whose
// Detail is the text after "<errorPrefix> "; a reply too short to carry
// a detail yields an empty one. Anything else is a ViolationError.
// The success prefix is checked first.
func Classify(reply, successPrefix, errorPrefix string) (Status, error) {
	switch {
	case strings.HasPrefix(reply, successPrefix):
		return StatusSuccess, nil
	case strings.HasPrefix(reply, errorPrefix):
		detail := ""
		if len(reply) > len(errorPrefix)+1 {
			detail = reply[len(errorPrefix)+1:]
		}
		return StatusRejected, &RejectedError{Detail: detail}
	default:
		return StatusUnknown, &ViolationError{Raw: reply}
	}
}
