package http2

import (
	"encoding/binary"

	"github.com/rs/zerolog"
)

// StreamState tracks the lifecycle of a single HTTP/2 stream. Entries are
// created lazily the first time a DATA or HEADERS frame references a stream
// id, and removed on RST_STREAM or an explicit RemoveStream call. They are
// not removed automatically when both flags become true; cleanup past that
// point is the caller's responsibility.
type StreamState struct {
	// HeadersComplete is true once END_HEADERS has been seen for the stream.
	HeadersComplete bool
	// StreamEnded is true once END_STREAM has been seen for the stream.
	StreamEnded bool
}

// pendingHeaderBlock is an in-progress header block awaiting CONTINUATION.
// At most one exists per connection: strictly between a HEADERS frame
// lacking END_HEADERS and the CONTINUATION that sets END_HEADERS for the
// same stream.
type pendingHeaderBlock struct {
	streamID uint32
	// endStream is captured from the originating HEADERS frame and held
	// immutable through the assembly's lifetime.
	endStream bool
	block     []byte
}

// Codec is a synchronous HTTP/2 frame parser and event source for exactly
// one connection. It owns the receive buffer, the per-stream state table,
// the single in-flight header-block assembly, and the preface flag.
//
// A Codec must not be mutated concurrently from multiple goroutines; callers
// owning shared access serialize calls externally.
type Codec struct {
	buf             []byte
	streams         map[uint32]*StreamState
	prefaceReceived bool
	pending         *pendingHeaderBlock
	log             zerolog.Logger
}

// Option configures a Codec.
type Option func(*Codec)

// WithLogger attaches a zerolog logger for debug-level frame tracing. The
// default is a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Codec) { c.log = log }
}

// NewCodec creates a Codec with empty state.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{
		streams: make(map[uint32]*StreamState),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Process appends data to the connection buffer and parses as many complete
// frames as are buffered, returning their events in frame-arrival order.
// A trailing partial frame is preserved verbatim for a later call: splitting
// the same input across arbitrarily many calls yields the identical event
// sequence as one call.
//
// Any error is terminal for this invocation: dispatch stops immediately and
// no events are returned, though the buffer has permanently advanced past
// every frame consumed earlier in the call (including the failing one).
// Deciding how to react, typically by building RST_STREAM or GOAWAY bytes
// and tearing the connection down, is the caller's responsibility.
func (c *Codec) Process(data []byte) ([]Event, error) {
	c.buf = append(c.buf, data...)

	// The client preface precedes all frames. Retry on every call until the
	// full 24 bytes are buffered; never skip, only defer.
	if !c.prefaceReceived && IsH2CPreface(c.buf) {
		c.buf = c.buf[len(ConnectionPreface):]
		c.prefaceReceived = true
		c.log.Debug().Msg("connection preface consumed")
	}

	var events []Event
	for {
		fh, ok := ParseFrameHeader(c.buf)
		if !ok {
			break
		}
		total := fh.TotalSize()
		if len(c.buf) < total {
			break
		}
		payload := c.buf[FrameHeaderLen:total]
		c.buf = c.buf[total:]

		c.log.Trace().
			Stringer("type", fh.Type).
			Uint32("stream_id", fh.StreamID).
			Uint32("length", fh.Length).
			Msg("frame received")

		ev, err := c.parseFrame(fh, payload)
		if err != nil {
			return nil, err
		}
		if ev != nil {
			events = append(events, ev)
		}
	}
	return events, nil
}

// parseFrame dispatches one complete frame by type. A nil event with nil
// error means the frame was consumed without semantic meaning (PRIORITY,
// PUSH_PROMISE, unknown types, or a header-block fragment still being
// accumulated).
func (c *Codec) parseFrame(fh FrameHeader, payload []byte) (Event, error) {
	switch fh.Type {
	case FrameData:
		data, err := extractDataPayload(fh, payload)
		if err != nil {
			return nil, err
		}
		stream := c.streamFor(fh.StreamID)
		if fh.IsEndStream() {
			stream.StreamEnded = true
		}
		return &DataEvent{
			StreamID:  fh.StreamID,
			Data:      append([]byte(nil), data...),
			EndStream: fh.IsEndStream(),
		}, nil

	case FrameHeaders:
		fragment, err := extractHeadersPayload(fh, payload)
		if err != nil {
			return nil, err
		}
		stream := c.streamFor(fh.StreamID)
		if fh.IsEndStream() {
			stream.StreamEnded = true
		}
		if fh.IsEndHeaders() {
			stream.HeadersComplete = true
			return &HeadersEvent{
				StreamID:    fh.StreamID,
				HeaderBlock: append([]byte(nil), fragment...),
				EndStream:   fh.IsEndStream(),
			}, nil
		}
		// Header block spans multiple frames; accumulate until CONTINUATION
		// delivers END_HEADERS.
		if len(fragment) > MaxHeaderBlockSize {
			return nil, NewHeaderBlockSizeError(len(fragment), MaxHeaderBlockSize)
		}
		c.pending = &pendingHeaderBlock{
			streamID:  fh.StreamID,
			endStream: fh.IsEndStream(),
			block:     append([]byte(nil), fragment...),
		}
		return nil, nil

	case FrameContinuation:
		if c.pending == nil {
			return nil, NewUnexpectedContinuationError(fh.StreamID)
		}
		if c.pending.streamID != fh.StreamID {
			return nil, NewProtocolViolationError(fh.StreamID, c.pending.streamID)
		}
		newSize := len(c.pending.block) + len(payload)
		if newSize > MaxHeaderBlockSize {
			c.pending = nil
			return nil, NewHeaderBlockSizeError(newSize, MaxHeaderBlockSize)
		}
		c.pending.block = append(c.pending.block, payload...)
		if !fh.IsEndHeaders() {
			return nil, nil
		}
		stream := c.streamFor(fh.StreamID)
		stream.HeadersComplete = true
		ev := &HeadersEvent{
			StreamID:    fh.StreamID,
			HeaderBlock: c.pending.block,
			EndStream:   c.pending.endStream,
		}
		c.pending = nil
		return ev, nil

	case FrameRSTStream:
		if len(payload) < 4 {
			return nil, NewMalformedFrameError(FrameRSTStream, 4, len(payload))
		}
		delete(c.streams, fh.StreamID)
		return &StreamResetEvent{
			StreamID:  fh.StreamID,
			ErrorCode: ErrorCode(binary.BigEndian.Uint32(payload[:4])),
		}, nil

	case FrameSettings:
		ack := fh.Flags&FlagSettingsAck != 0
		var settings []Setting
		if !ack {
			// Consecutive 6-byte entries; a trailing incomplete entry is
			// dropped, unknown identifiers pass through unfiltered.
			for pos := 0; pos+settingEntrySize <= len(payload); pos += settingEntrySize {
				settings = append(settings, Setting{
					ID:    SettingID(binary.BigEndian.Uint16(payload[pos : pos+2])),
					Value: binary.BigEndian.Uint32(payload[pos+2 : pos+6]),
				})
			}
		}
		return &SettingsEvent{Ack: ack, Settings: settings}, nil

	case FrameGoAway:
		if len(payload) < 8 {
			return nil, NewMalformedFrameError(FrameGoAway, 8, len(payload))
		}
		return &GoAwayEvent{
			LastStreamID: binary.BigEndian.Uint32(payload[:4]) & 0x7FFFFFFF,
			ErrorCode:    ErrorCode(binary.BigEndian.Uint32(payload[4:8])),
		}, nil

	case FrameWindowUpdate:
		if len(payload) < 4 {
			return nil, NewMalformedFrameError(FrameWindowUpdate, 4, len(payload))
		}
		return &WindowUpdateEvent{
			StreamID:  fh.StreamID,
			Increment: binary.BigEndian.Uint32(payload[:4]) & 0x7FFFFFFF,
		}, nil

	case FramePing:
		if len(payload) < 8 {
			return nil, NewMalformedFrameError(FramePing, 8, len(payload))
		}
		ev := &PingEvent{Ack: fh.Flags&FlagPingAck != 0}
		copy(ev.Data[:], payload[:8])
		return ev, nil

	case FramePriority, FramePushPromise:
		// Recognized but carry no meaning here: priority scheduling and
		// server push are out of scope.
		return nil, nil

	default:
		// RFC 7540 Section 4.1: unknown frame types are ignored and
		// discarded, not errors.
		return nil, nil
	}
}

// extractDataPayload strips the PADDED prefix and trailing padding from a
// DATA payload. The returned slice aliases payload.
func extractDataPayload(fh FrameHeader, payload []byte) ([]byte, error) {
	if fh.Flags&FlagPadded == 0 {
		return payload, nil
	}
	if len(payload) == 0 {
		return nil, NewPaddingError(FrameData, -1, 0)
	}
	padLen := int(payload[0])
	if padLen >= len(payload) {
		return nil, NewPaddingError(FrameData, padLen, len(payload))
	}
	return payload[1 : len(payload)-padLen], nil
}

// extractHeadersPayload strips the PADDED prefix/suffix and the 5-byte
// priority prefix from a HEADERS payload, leaving the header block fragment.
// The returned slice aliases payload.
func extractHeadersPayload(fh FrameHeader, payload []byte) ([]byte, error) {
	offset, end := 0, len(payload)

	if fh.Flags&FlagPadded != 0 {
		if len(payload) == 0 {
			return nil, NewPaddingError(FrameHeaders, -1, 0)
		}
		padLen := int(payload[0])
		offset = 1
		if padLen >= len(payload)-offset {
			return nil, NewPaddingError(FrameHeaders, padLen, len(payload))
		}
		end = len(payload) - padLen
	}

	if fh.Flags&FlagPriority != 0 {
		// Stream dependency (4 bytes) + weight (1 byte), measured after any
		// pad stripping.
		if end-offset < 5 {
			return nil, NewMalformedFrameError(FrameHeaders, 5, end-offset)
		}
		offset += 5
	}

	return payload[offset:end], nil
}

// streamFor returns the tracked state for a stream id, creating an empty
// entry on first reference.
func (c *Codec) streamFor(id uint32) *StreamState {
	if s, ok := c.streams[id]; ok {
		return s
	}
	s := &StreamState{}
	c.streams[id] = s
	return s
}

// Stream returns a copy of the tracked state for a stream id, and whether
// the stream is currently tracked.
func (c *Codec) Stream(id uint32) (StreamState, bool) {
	s, ok := c.streams[id]
	if !ok {
		return StreamState{}, false
	}
	return *s, true
}

// RemoveStream drops the tracked state for a stream id, for example after
// the caller has finished with a completed exchange. It is idempotent: a
// missing id is a no-op.
func (c *Codec) RemoveStream(id uint32) {
	delete(c.streams, id)
}

// PrefaceReceived reports whether the connection preface has been consumed.
func (c *Codec) PrefaceReceived() bool {
	return c.prefaceReceived
}

// SetPrefaceReceived overrides the preface flag. Hosts that negotiate HTTP/2
// without a wire preface (e.g. an upgrade path) set it to true before
// feeding frames.
func (c *Codec) SetPrefaceReceived(received bool) {
	c.prefaceReceived = received
}

// Reset discards all connection state: buffer, stream table, preface flag,
// and any partially assembled header block. It is always safe to call and is
// used when the underlying connection restarts, so state never leaks across
// sessions.
func (c *Codec) Reset() {
	c.buf = nil
	c.streams = make(map[uint32]*StreamState)
	c.prefaceReceived = false
	c.pending = nil
	c.log.Debug().Msg("codec state reset")
}
