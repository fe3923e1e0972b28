package http2

import "encoding/binary"

// Frame builders produce exact RFC 7540 wire bytes for outbound control
// frames. They are pure and total: all inputs are caller-controlled, so no
// builder can fail. The caller hands the returned bytes to its transport.

// BuildRSTStream builds an RST_STREAM frame terminating a single stream.
func BuildRSTStream(streamID uint32, errorCode ErrorCode) []byte {
	frame := make([]byte, 0, FrameHeaderLen+4)
	frame = appendFrameHeader(frame, 4, FrameRSTStream, 0, streamID)
	return binary.BigEndian.AppendUint32(frame, uint32(errorCode))
}

// BuildGoAway builds a connection-level GOAWAY frame carrying the highest
// stream id the sender processed and an error code. No debug data is
// attached.
func BuildGoAway(lastStreamID uint32, errorCode ErrorCode) []byte {
	frame := make([]byte, 0, FrameHeaderLen+8)
	frame = appendFrameHeader(frame, 8, FrameGoAway, 0, 0)
	frame = binary.BigEndian.AppendUint32(frame, lastStreamID)
	return binary.BigEndian.AppendUint32(frame, uint32(errorCode))
}

// BuildSettingsAck builds an empty SETTINGS frame with the ACK flag,
// acknowledging the peer's SETTINGS.
func BuildSettingsAck() []byte {
	return appendFrameHeader(nil, 0, FrameSettings, FlagSettingsAck, 0)
}

// BuildSettings builds an empty SETTINGS frame, advertising defaults. Sent
// at connection start.
func BuildSettings() []byte {
	return appendFrameHeader(nil, 0, FrameSettings, 0, 0)
}

// BuildSettingsWithWindow builds a SETTINGS frame carrying a single
// INITIAL_WINDOW_SIZE entry. Raising the window above the 65535-byte default
// lets the peer send more data per stream before waiting on WINDOW_UPDATE,
// which matters for concurrent streams.
func BuildSettingsWithWindow(initialWindowSize uint32) []byte {
	frame := make([]byte, 0, FrameHeaderLen+settingEntrySize)
	frame = appendFrameHeader(frame, settingEntrySize, FrameSettings, 0, 0)
	frame = binary.BigEndian.AppendUint16(frame, uint16(SettingInitialWindowSize))
	return binary.BigEndian.AppendUint32(frame, initialWindowSize)
}

// BuildPingAck builds a PING frame with the ACK flag, echoing the peer's 8
// opaque bytes.
func BuildPingAck(data [8]byte) []byte {
	frame := make([]byte, 0, FrameHeaderLen+8)
	frame = appendFrameHeader(frame, 8, FramePing, FlagPingAck, 0)
	return append(frame, data[:]...)
}

// BuildWindowUpdate builds a WINDOW_UPDATE frame replenishing a flow-control
// window. A streamID of 0 updates the connection-level window. The reserved
// bit of the increment is cleared.
func BuildWindowUpdate(streamID, increment uint32) []byte {
	frame := make([]byte, 0, FrameHeaderLen+4)
	frame = appendFrameHeader(frame, 4, FrameWindowUpdate, 0, streamID)
	return binary.BigEndian.AppendUint32(frame, increment&0x7FFFFFFF)
}

// BuildContinuation builds a CONTINUATION frame carrying a header-block
// fragment. endHeaders marks the final fragment of the block.
func BuildContinuation(streamID uint32, fragment []byte, endHeaders bool) []byte {
	var flags Flags
	if endHeaders {
		flags |= FlagEndHeaders
	}
	frame := make([]byte, 0, FrameHeaderLen+len(fragment))
	frame = appendFrameHeader(frame, uint32(len(fragment)), FrameContinuation, flags, streamID)
	return append(frame, fragment...)
}
