package http2

import (
	"encoding/binary"
	"fmt"
)

// FrameType represents an HTTP/2 frame type.
type FrameType uint8

// Frame types from RFC 7540 Section 6.
const (
	// FrameData is for DATA frames (0x0).
	FrameData FrameType = 0x0
	// FrameHeaders is for HEADERS frames (0x1).
	FrameHeaders FrameType = 0x1
	// FramePriority is for PRIORITY frames (0x2).
	FramePriority FrameType = 0x2
	// FrameRSTStream is for RST_STREAM frames (0x3).
	FrameRSTStream FrameType = 0x3
	// FrameSettings is for SETTINGS frames (0x4).
	FrameSettings FrameType = 0x4
	// FramePushPromise is for PUSH_PROMISE frames (0x5).
	FramePushPromise FrameType = 0x5
	// FramePing is for PING frames (0x6).
	FramePing FrameType = 0x6
	// FrameGoAway is for GOAWAY frames (0x7).
	FrameGoAway FrameType = 0x7
	// FrameWindowUpdate is for WINDOW_UPDATE frames (0x8).
	FrameWindowUpdate FrameType = 0x8
	// FrameContinuation is for CONTINUATION frames (0x9).
	FrameContinuation FrameType = 0x9
)

// String returns the string representation of the FrameType.
func (t FrameType) String() string {
	switch t {
	case FrameData:
		return "DATA"
	case FrameHeaders:
		return "HEADERS"
	case FramePriority:
		return "PRIORITY"
	case FrameRSTStream:
		return "RST_STREAM"
	case FrameSettings:
		return "SETTINGS"
	case FramePushPromise:
		return "PUSH_PROMISE"
	case FramePing:
		return "PING"
	case FrameGoAway:
		return "GOAWAY"
	case FrameWindowUpdate:
		return "WINDOW_UPDATE"
	case FrameContinuation:
		return "CONTINUATION"
	default:
		return fmt.Sprintf("UNKNOWN_FRAME_TYPE_%d", uint8(t))
	}
}

// Flags represents flags for an HTTP/2 frame.
type Flags uint8

// Frame header flags.
const (
	// FlagEndStream marks the final frame of a stream's data direction
	// (DATA and HEADERS frames).
	FlagEndStream Flags = 0x1
	// FlagEndHeaders marks the final fragment of a header block
	// (HEADERS and CONTINUATION frames).
	FlagEndHeaders Flags = 0x4
	// FlagPadded indicates that the frame carries a Pad Length field and
	// trailing padding (DATA and HEADERS frames).
	FlagPadded Flags = 0x8
	// FlagPriority indicates that a HEADERS frame carries a stream
	// dependency and weight prefix.
	FlagPriority Flags = 0x20

	// FlagSettingsAck acknowledges receipt and application of the peer's
	// SETTINGS frame.
	FlagSettingsAck Flags = 0x1
	// FlagPingAck marks a PING frame as an acknowledgment.
	FlagPingAck Flags = 0x1
)

// SettingID represents a SETTINGS parameter identifier.
type SettingID uint16

// SETTINGS parameters from RFC 7540 Section 6.5.2.
const (
	// SettingHeaderTableSize (0x1): Initial size of the HPACK header table.
	SettingHeaderTableSize SettingID = 0x1
	// SettingEnablePush (0x2): Whether server push is enabled.
	SettingEnablePush SettingID = 0x2
	// SettingMaxConcurrentStreams (0x3): Maximum number of concurrent streams.
	SettingMaxConcurrentStreams SettingID = 0x3
	// SettingInitialWindowSize (0x4): Initial window size for flow control.
	SettingInitialWindowSize SettingID = 0x4
	// SettingMaxFrameSize (0x5): Maximum size of a frame payload.
	SettingMaxFrameSize SettingID = 0x5
	// SettingMaxHeaderListSize (0x6): Maximum size of header list.
	SettingMaxHeaderListSize SettingID = 0x6
)

// String returns the string representation of the SettingID.
func (s SettingID) String() string {
	switch s {
	case SettingHeaderTableSize:
		return "SETTINGS_HEADER_TABLE_SIZE"
	case SettingEnablePush:
		return "SETTINGS_ENABLE_PUSH"
	case SettingMaxConcurrentStreams:
		return "SETTINGS_MAX_CONCURRENT_STREAMS"
	case SettingInitialWindowSize:
		return "SETTINGS_INITIAL_WINDOW_SIZE"
	case SettingMaxFrameSize:
		return "SETTINGS_MAX_FRAME_SIZE"
	case SettingMaxHeaderListSize:
		return "SETTINGS_MAX_HEADER_LIST_SIZE"
	default:
		return fmt.Sprintf("UNKNOWN_SETTING_ID_%d", uint16(s))
	}
}

// Setting is a single (identifier, value) entry in a SETTINGS frame.
type Setting struct {
	ID    SettingID
	Value uint32
}

const (
	// FrameHeaderLen is the length of the fixed HTTP/2 frame header.
	FrameHeaderLen = 9

	// MaxHeaderBlockSize is the cap on accumulated header-block bytes across
	// a HEADERS frame and its CONTINUATION frames (256 KiB). It bounds memory
	// growth from a peer that withholds END_HEADERS indefinitely.
	MaxHeaderBlockSize = 256 * 1024

	// settingEntrySize is the wire size of one SETTINGS entry.
	settingEntrySize = 6
)

// ConnectionPreface is the fixed 24-byte sequence a client sends before any
// frames, confirming HTTP/2 usage (RFC 7540 Section 3.5).
const ConnectionPreface = "PRI * HTTP/2.0\r\n\r\nSM\r\n\r\n"

// IsH2CPreface reports whether data begins with the HTTP/2 connection
// preface. It is used for h2c upgrade detection independent of any Codec.
func IsH2CPreface(data []byte) bool {
	return len(data) >= len(ConnectionPreface) && string(data[:len(ConnectionPreface)]) == ConnectionPreface
}

// FrameHeader represents the 9-octet header common to all frames.
type FrameHeader struct {
	Length   uint32    // 24 bits, payload byte count
	Type     FrameType // 8 bits
	Flags    Flags     // 8 bits
	StreamID uint32    // 31 bits (R is 1 bit, masked out on parse)
}

// ParseFrameHeader decodes a frame header from the front of data. It returns
// false when fewer than FrameHeaderLen bytes are available; that is the
// normal incremental-input state, not an error.
func ParseFrameHeader(data []byte) (FrameHeader, bool) {
	if len(data) < FrameHeaderLen {
		return FrameHeader{}, false
	}
	return FrameHeader{
		Length:   uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2]),
		Type:     FrameType(data[3]),
		Flags:    Flags(data[4]),
		StreamID: binary.BigEndian.Uint32(data[5:9]) & 0x7FFFFFFF, // Mask out R bit
	}, true
}

// TotalSize returns the full on-wire frame size, header included.
func (fh FrameHeader) TotalSize() int {
	return FrameHeaderLen + int(fh.Length)
}

// IsEndStream reports whether the END_STREAM flag is set.
func (fh FrameHeader) IsEndStream() bool {
	return fh.Flags&FlagEndStream != 0
}

// IsEndHeaders reports whether the END_HEADERS flag is set.
func (fh FrameHeader) IsEndHeaders() bool {
	return fh.Flags&FlagEndHeaders != 0
}

// appendFrameHeader serializes a frame header onto dst. The R bit of the
// stream id is always written as 0.
func appendFrameHeader(dst []byte, length uint32, ftype FrameType, flags Flags, streamID uint32) []byte {
	var raw [FrameHeaderLen]byte
	raw[0] = byte(length >> 16)
	raw[1] = byte(length >> 8)
	raw[2] = byte(length)
	raw[3] = byte(ftype)
	raw[4] = byte(flags)
	binary.BigEndian.PutUint32(raw[5:9], streamID&0x7FFFFFFF)
	return append(dst, raw[:]...)
}
