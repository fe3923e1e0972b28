package http2

// Event is a semantic outcome produced by Codec.Process. The set of
// implementations is closed: frame types without semantic meaning here
// (PRIORITY, PUSH_PROMISE, unknown codes) are consumed from the buffer and
// produce no event at all.
type Event interface {
	// isEvent restricts implementations to this package.
	isEvent()
}

// HeadersEvent carries a complete header block for a stream. HeaderBlock is
// an opaque HPACK-encoded byte sequence, possibly reassembled from a HEADERS
// frame plus CONTINUATION frames; hand it to an HpackDecoder scoped to the
// same connection.
type HeadersEvent struct {
	StreamID    uint32
	HeaderBlock []byte
	EndStream   bool
}

// DataEvent carries one DATA frame's payload, padding already stripped.
type DataEvent struct {
	StreamID  uint32
	Data      []byte
	EndStream bool
}

// StreamResetEvent reports an RST_STREAM frame. The codec has already
// dropped its tracked state for the stream.
type StreamResetEvent struct {
	StreamID  uint32
	ErrorCode ErrorCode
}

// GoAwayEvent reports a connection-level GOAWAY frame. The stream table is
// not cleared automatically; teardown policy belongs to the caller.
type GoAwayEvent struct {
	LastStreamID uint32
	ErrorCode    ErrorCode
}

// SettingsEvent reports a SETTINGS frame. Settings preserves wire order and
// passes unknown identifiers through unfiltered; it is empty for ACK frames.
type SettingsEvent struct {
	Ack      bool
	Settings []Setting
}

// WindowUpdateEvent reports a WINDOW_UPDATE frame. The codec parses the
// increment but does not track or enforce flow-control windows.
type WindowUpdateEvent struct {
	StreamID  uint32
	Increment uint32
}

// PingEvent reports a PING frame with its 8 opaque payload bytes.
type PingEvent struct {
	Ack  bool
	Data [8]byte
}

func (*HeadersEvent) isEvent()      {}
func (*DataEvent) isEvent()         {}
func (*StreamResetEvent) isEvent()  {}
func (*GoAwayEvent) isEvent()       {}
func (*SettingsEvent) isEvent()     {}
func (*WindowUpdateEvent) isEvent() {}
func (*PingEvent) isEvent()         {}
