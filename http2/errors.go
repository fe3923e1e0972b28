package http2

import "fmt"

// ErrorCode represents an HTTP/2 error code.
type ErrorCode uint32

// HTTP/2 error codes from RFC 7540 Section 7.
const (
	// ErrCodeNoError (0x0): Graceful shutdown.
	ErrCodeNoError ErrorCode = 0x0
	// ErrCodeProtocolError (0x1): Protocol error detected.
	ErrCodeProtocolError ErrorCode = 0x1
	// ErrCodeInternalError (0x2): Implementation fault.
	ErrCodeInternalError ErrorCode = 0x2
	// ErrCodeFlowControlError (0x3): Flow-control limits exceeded.
	ErrCodeFlowControlError ErrorCode = 0x3
	// ErrCodeSettingsTimeout (0x4): Settings not acknowledged.
	ErrCodeSettingsTimeout ErrorCode = 0x4
	// ErrCodeStreamClosed (0x5): Frame received for already closed stream.
	ErrCodeStreamClosed ErrorCode = 0x5
	// ErrCodeFrameSizeError (0x6): Frame size incorrect.
	ErrCodeFrameSizeError ErrorCode = 0x6
	// ErrCodeRefusedStream (0x7): Stream not processed.
	ErrCodeRefusedStream ErrorCode = 0x7
	// ErrCodeCancel (0x8): Stream cancelled.
	ErrCodeCancel ErrorCode = 0x8
	// ErrCodeCompressionError (0x9): Compression state not maintained.
	ErrCodeCompressionError ErrorCode = 0x9
	// ErrCodeConnectError (0xa): Connection established in error.
	ErrCodeConnectError ErrorCode = 0xa
	// ErrCodeEnhanceYourCalm (0xb): Processing capacity exceeded.
	ErrCodeEnhanceYourCalm ErrorCode = 0xb
	// ErrCodeInadequateSecurity (0xc): Negotiated TLS parameters not acceptable.
	ErrCodeInadequateSecurity ErrorCode = 0xc
	// ErrCodeHTTP11Required (0xd): Use HTTP/1.1 for the request.
	ErrCodeHTTP11Required ErrorCode = 0xd
)

// String returns the string representation of the ErrorCode.
func (e ErrorCode) String() string {
	switch e {
	case ErrCodeNoError:
		return "NO_ERROR"
	case ErrCodeProtocolError:
		return "PROTOCOL_ERROR"
	case ErrCodeInternalError:
		return "INTERNAL_ERROR"
	case ErrCodeFlowControlError:
		return "FLOW_CONTROL_ERROR"
	case ErrCodeSettingsTimeout:
		return "SETTINGS_TIMEOUT"
	case ErrCodeStreamClosed:
		return "STREAM_CLOSED"
	case ErrCodeFrameSizeError:
		return "FRAME_SIZE_ERROR"
	case ErrCodeRefusedStream:
		return "REFUSED_STREAM"
	case ErrCodeCancel:
		return "CANCEL"
	case ErrCodeCompressionError:
		return "COMPRESSION_ERROR"
	case ErrCodeConnectError:
		return "CONNECT_ERROR"
	case ErrCodeEnhanceYourCalm:
		return "ENHANCE_YOUR_CALM"
	case ErrCodeInadequateSecurity:
		return "INADEQUATE_SECURITY"
	case ErrCodeHTTP11Required:
		return "HTTP_1_1_REQUIRED"
	default:
		return fmt.Sprintf("UNKNOWN_ERROR_CODE_%d", uint32(e))
	}
}

// MalformedFrameError indicates a frame whose payload is shorter than the
// fixed minimum its type requires (RST_STREAM, SETTINGS entries aside,
// GOAWAY, WINDOW_UPDATE, PING).
// It implements the standard Go error interface.
type MalformedFrameError struct {
	Type     FrameType
	Required int // minimum payload bytes the frame type requires
	Actual   int // payload bytes actually present
}

// Error returns a string representation of the MalformedFrameError.
func (e *MalformedFrameError) Error() string {
	return fmt.Sprintf("%s frame payload too short: %d bytes, need at least %d", e.Type, e.Actual, e.Required)
}

// NewMalformedFrameError creates a new MalformedFrameError.
func NewMalformedFrameError(ftype FrameType, required, actual int) *MalformedFrameError {
	return &MalformedFrameError{Type: ftype, Required: required, Actual: actual}
}

// PaddingError indicates a PADDED frame whose declared pad length does not
// fit the payload: either the payload is empty (no room for the Pad Length
// field) or the padding would consume the remaining bytes entirely.
// It implements the standard Go error interface.
type PaddingError struct {
	Type       FrameType
	PadLength  int // declared pad length; -1 when the payload had no room for the field
	PayloadLen int
}

// Error returns a string representation of the PaddingError.
func (e *PaddingError) Error() string {
	if e.PadLength < 0 {
		return fmt.Sprintf("invalid padding: PADDED %s frame with no payload", e.Type)
	}
	return fmt.Sprintf("invalid padding: pad length %d exceeds %s frame payload of %d bytes", e.PadLength, e.Type, e.PayloadLen)
}

// NewPaddingError creates a new PaddingError.
func NewPaddingError(ftype FrameType, padLength, payloadLen int) *PaddingError {
	return &PaddingError{Type: ftype, PadLength: padLength, PayloadLen: payloadLen}
}

// ProtocolViolationError indicates a CONTINUATION frame received outside a
// header-block assembly, or one naming a different stream than the pending
// assembly. It implements the standard Go error interface.
type ProtocolViolationError struct {
	StreamID        uint32 // stream named by the offending CONTINUATION
	PendingStreamID uint32 // stream of the pending assembly, valid when HasPending
	HasPending      bool
}

// Error returns a string representation of the ProtocolViolationError.
func (e *ProtocolViolationError) Error() string {
	if e.HasPending {
		return fmt.Sprintf("CONTINUATION for stream %d but pending headers on stream %d", e.StreamID, e.PendingStreamID)
	}
	return fmt.Sprintf("unexpected CONTINUATION frame for stream %d", e.StreamID)
}

// NewProtocolViolationError creates a ProtocolViolationError for a
// CONTINUATION whose stream id does not match the pending assembly.
func NewProtocolViolationError(streamID, pendingStreamID uint32) *ProtocolViolationError {
	return &ProtocolViolationError{StreamID: streamID, PendingStreamID: pendingStreamID, HasPending: true}
}

// NewUnexpectedContinuationError creates a ProtocolViolationError for a
// CONTINUATION received while no header-block assembly is pending.
func NewUnexpectedContinuationError(streamID uint32) *ProtocolViolationError {
	return &ProtocolViolationError{StreamID: streamID}
}

// HeaderBlockSizeError indicates that accumulated header-block bytes
// surpassed MaxHeaderBlockSize. It implements the standard Go error
// interface.
type HeaderBlockSizeError struct {
	Size  int // attempted cumulative size
	Limit int
}

// Error returns a string representation of the HeaderBlockSizeError.
func (e *HeaderBlockSizeError) Error() string {
	return fmt.Sprintf("header block too large (%d bytes, max %d)", e.Size, e.Limit)
}

// NewHeaderBlockSizeError creates a new HeaderBlockSizeError.
func NewHeaderBlockSizeError(size, limit int) *HeaderBlockSizeError {
	return &HeaderBlockSizeError{Size: size, Limit: limit}
}
