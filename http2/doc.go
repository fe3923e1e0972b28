// Package http2 implements a synchronous, sans-I/O codec for the HTTP/2
// binary framing layer (RFC 7540 Sections 4-6).
//
// The package turns a raw byte stream into a sequence of semantic events
// (Headers, Data, StreamReset, GoAway, Settings, WindowUpdate, Ping) and
// turns outbound control intents into wire bytes. It performs no socket I/O,
// no TLS, and no connection orchestration; it is intended for hosts that
// cannot run an async network stack, such as sandboxed interception kernels
// or embedded environments.
//
// A Codec models exactly one HTTP/2 connection. Feed it bytes as they arrive
// and collect events:
//
//	codec := http2.NewCodec()
//	events, err := codec.Process(buf)
//	if err != nil {
//		// terminal for this connection; react via the builders
//	}
//	for _, ev := range events {
//		switch ev := ev.(type) {
//		case *http2.HeadersEvent:
//			// ev.HeaderBlock is an opaque HPACK block; hand it to HpackDecoder
//		case *http2.DataEvent:
//			// ev.Data, ev.EndStream
//		}
//	}
//
// The codec buffers partial input across calls, so frames may be split at
// arbitrary byte boundaries. A single in-flight HEADERS+CONTINUATION header
// block is reassembled per connection, bounded by MaxHeaderBlockSize to
// defend against CONTINUATION floods.
//
// The package deliberately does not provide:
//
//   - Transport or TLS (the host supplies the bytes)
//   - HTTP/2 flow-control enforcement (WINDOW_UPDATE frames are parsed and
//     built, never tracked)
//   - Stream multiplexing, priority scheduling, or server push
//
// HPACK header compression is a collaborator with its own per-connection
// state: HpackEncoder and HpackDecoder wrap golang.org/x/net/http2/hpack.
// The codec itself never invokes them; header-block bytes cross the boundary
// opaque.
package http2
