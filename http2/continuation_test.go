package http2_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/h2wire/http2"
)

func TestContinuationSingleFrame(t *testing.T) {
	codec := newTestCodec()

	var input []byte
	input = append(input, rawFrame(http2.FrameHeaders, 0, 1, []byte{0x82, 0x86, 0x84})...)
	input = append(input, rawFrame(http2.FrameContinuation, http2.FlagEndHeaders, 1, []byte{0x41, 0x8a})...)

	events, err := codec.Process(input)
	require.NoError(t, err)
	require.Len(t, events, 1)

	headers := events[0].(*http2.HeadersEvent)
	assert.Equal(t, uint32(1), headers.StreamID)
	assert.Equal(t, []byte{0x82, 0x86, 0x84, 0x41, 0x8a}, headers.HeaderBlock)
	assert.False(t, headers.EndStream)
}

func TestContinuationMultipleFrames(t *testing.T) {
	codec := newTestCodec()

	var input []byte
	input = append(input, rawFrame(http2.FrameHeaders, 0, 3, []byte{0x82, 0x86})...)
	input = append(input, rawFrame(http2.FrameContinuation, 0, 3, []byte{0x84, 0x41})...)
	input = append(input, rawFrame(http2.FrameContinuation, http2.FlagEndHeaders, 3, []byte{0x8a})...)

	events, err := codec.Process(input)
	require.NoError(t, err)
	require.Len(t, events, 1)

	headers := events[0].(*http2.HeadersEvent)
	assert.Equal(t, uint32(3), headers.StreamID)
	assert.Equal(t, []byte{0x82, 0x86, 0x84, 0x41, 0x8a}, headers.HeaderBlock)
}

// END_STREAM is captured from the originating HEADERS frame and carried
// through to the assembled event, regardless of CONTINUATION flags.
func TestContinuationPreservesEndStream(t *testing.T) {
	codec := newTestCodec()

	var input []byte
	input = append(input, rawFrame(http2.FrameHeaders, http2.FlagEndStream, 1, []byte{0x82, 0x86})...)
	input = append(input, rawFrame(http2.FrameContinuation, http2.FlagEndHeaders, 1, []byte{0x84})...)

	events, err := codec.Process(input)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, events[0].(*http2.HeadersEvent).EndStream)
}

func TestContinuationIncrementalDelivery(t *testing.T) {
	codec := newTestCodec()

	events, err := codec.Process(rawFrame(http2.FrameHeaders, 0, 1, []byte{0x82, 0x86, 0x84}))
	require.NoError(t, err)
	assert.Empty(t, events, "incomplete header block must not emit")

	events, err = codec.Process(rawFrame(http2.FrameContinuation, http2.FlagEndHeaders, 1, []byte{0x41, 0x8a}))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, []byte{0x82, 0x86, 0x84, 0x41, 0x8a}, events[0].(*http2.HeadersEvent).HeaderBlock)
}

func TestContinuationWrongStream(t *testing.T) {
	codec := newTestCodec()

	var input []byte
	input = append(input, rawFrame(http2.FrameHeaders, 0, 1, []byte{0x82, 0x86})...)
	input = append(input, rawFrame(http2.FrameContinuation, http2.FlagEndHeaders, 3, []byte{0x84})...)

	events, err := codec.Process(input)
	assert.Nil(t, events)

	var violation *http2.ProtocolViolationError
	require.ErrorAs(t, err, &violation)
	assert.True(t, violation.HasPending)
	assert.Equal(t, uint32(3), violation.StreamID)
	assert.Equal(t, uint32(1), violation.PendingStreamID)
	assert.Contains(t, err.Error(), "CONTINUATION for stream 3")
	assert.Contains(t, err.Error(), "pending headers on stream 1")
}

func TestContinuationWithoutPendingHeaders(t *testing.T) {
	codec := newTestCodec()

	_, err := codec.Process(rawFrame(http2.FrameContinuation, http2.FlagEndHeaders, 1, []byte{0x82, 0x86}))
	var violation *http2.ProtocolViolationError
	require.ErrorAs(t, err, &violation)
	assert.False(t, violation.HasPending)
	assert.Equal(t, uint32(1), violation.StreamID)
	assert.Contains(t, err.Error(), "unexpected CONTINUATION")
}

func TestContinuationSizeBoundAllowsNormalHeaders(t *testing.T) {
	codec := newTestCodec()

	_, err := codec.Process(rawFrame(http2.FrameHeaders, 0, 1, bytes.Repeat([]byte{0x82}, 100)))
	require.NoError(t, err)

	events, err := codec.Process(rawFrame(http2.FrameContinuation, http2.FlagEndHeaders, 1, bytes.Repeat([]byte{0x86}, 100)))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Len(t, events[0].(*http2.HeadersEvent).HeaderBlock, 200)
}

func TestContinuationSizeBoundAtLimit(t *testing.T) {
	codec := newTestCodec()

	initial := bytes.Repeat([]byte{0x82}, http2.MaxHeaderBlockSize-10)
	_, err := codec.Process(rawFrame(http2.FrameHeaders, 0, 1, initial))
	require.NoError(t, err)

	// Cumulative size lands exactly on the limit: allowed.
	events, err := codec.Process(rawFrame(http2.FrameContinuation, http2.FlagEndHeaders, 1, bytes.Repeat([]byte{0x86}, 10)))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Len(t, events[0].(*http2.HeadersEvent).HeaderBlock, http2.MaxHeaderBlockSize)
}

func TestContinuationSizeBoundRejectsOversizedBlock(t *testing.T) {
	codec := newTestCodec()

	// 200 KiB initial fragment is under the limit.
	_, err := codec.Process(rawFrame(http2.FrameHeaders, 0, 1, bytes.Repeat([]byte{0x82}, 200*1024)))
	require.NoError(t, err)

	// 100 KiB more pushes the cumulative total over 256 KiB.
	_, err = codec.Process(rawFrame(http2.FrameContinuation, http2.FlagEndHeaders, 1, bytes.Repeat([]byte{0x86}, 100*1024)))
	var sizeErr *http2.HeaderBlockSizeError
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, 300*1024, sizeErr.Size)
	assert.Equal(t, http2.MaxHeaderBlockSize, sizeErr.Limit)

	// The overflow cleared the assembly: a further CONTINUATION on the same
	// stream has nothing to continue.
	_, err = codec.Process(rawFrame(http2.FrameContinuation, http2.FlagEndHeaders, 1, []byte{0x84}))
	var violation *http2.ProtocolViolationError
	require.ErrorAs(t, err, &violation)
	assert.False(t, violation.HasPending)
}

func TestHeadersInitialFragmentExceedsLimit(t *testing.T) {
	codec := newTestCodec()

	// A single HEADERS fragment over the limit, with END_HEADERS absent, is
	// rejected before any assembly starts.
	_, err := codec.Process(rawFrame(http2.FrameHeaders, 0, 1, bytes.Repeat([]byte{0x82}, 300*1024)))
	var sizeErr *http2.HeaderBlockSizeError
	require.ErrorAs(t, err, &sizeErr)
	assert.Contains(t, err.Error(), "header block too large")
}

// An oversized fragment with END_HEADERS set is not bounded: the cap guards
// cross-frame accumulation, and the 24-bit length field already bounds any
// single frame.
func TestHeadersSingleFrameNotBounded(t *testing.T) {
	codec := newTestCodec()

	events, err := codec.Process(rawFrame(http2.FrameHeaders, http2.FlagEndHeaders, 1, bytes.Repeat([]byte{0x82}, 300*1024)))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Len(t, events[0].(*http2.HeadersEvent).HeaderBlock, 300*1024)
}
