package http2

import (
	"bytes"
	"fmt"

	"golang.org/x/net/http2/hpack"
)

// The HPACK wrappers are the codec's external collaborator for header
// compression (RFC 7541). The Codec never calls them: header-block bytes
// cross its boundary opaque inside HeadersEvent, and the host pairs one
// encoder and one decoder with each connection, matching the 1:1 scoping of
// HPACK dynamic-table state to a connection's lifetime.

// defaultHeaderTableSize is the initial HPACK dynamic table size
// (RFC 7540 Section 6.5.2).
const defaultHeaderTableSize = 4096

// HpackDecoder decodes HPACK-encoded header blocks into ordered
// (name, value) pairs. It wraps hpack.Decoder, whose dynamic table carries
// state between blocks on the same connection.
type HpackDecoder struct {
	decoder *hpack.Decoder
	fields  []hpack.HeaderField
}

// NewHpackDecoder creates a decoder with the default dynamic table size.
func NewHpackDecoder() *HpackDecoder {
	d := &HpackDecoder{}
	d.decoder = hpack.NewDecoder(defaultHeaderTableSize, func(hf hpack.HeaderField) {
		d.fields = append(d.fields, hf)
	})
	return d
}

// Decode decodes one complete header block into its ordered header fields.
// The block must be the full accumulated sequence for one set of headers
// (a HeadersEvent.HeaderBlock); partial fragments are not accepted.
func (d *HpackDecoder) Decode(block []byte) ([]hpack.HeaderField, error) {
	d.fields = nil
	if _, err := d.decoder.Write(block); err != nil {
		return nil, fmt.Errorf("hpack decode: %w", err)
	}
	if err := d.decoder.Close(); err != nil {
		return nil, fmt.Errorf("hpack decode: %w", err)
	}
	fields := d.fields
	d.fields = nil
	return fields, nil
}

// SetMaxDynamicTableSize updates the decoder's dynamic table capacity. This
// corresponds to the SETTINGS_HEADER_TABLE_SIZE advertised to the peer.
func (d *HpackDecoder) SetMaxDynamicTableSize(size uint32) {
	d.decoder.SetMaxDynamicTableSize(size)
}

// HpackEncoder encodes ordered header fields into an HPACK header block. It
// wraps hpack.Encoder, whose dynamic table carries state between blocks on
// the same connection.
type HpackEncoder struct {
	buf     bytes.Buffer
	encoder *hpack.Encoder
}

// NewHpackEncoder creates an encoder with the default dynamic table size.
func NewHpackEncoder() *HpackEncoder {
	e := &HpackEncoder{}
	e.encoder = hpack.NewEncoder(&e.buf)
	return e
}

// Encode encodes header fields in order into a header block. The returned
// slice is owned by the caller.
func (e *HpackEncoder) Encode(fields []hpack.HeaderField) ([]byte, error) {
	e.buf.Reset()
	for _, hf := range fields {
		if hf.Name == "" {
			return nil, fmt.Errorf("hpack encode: empty header field name (value %q)", hf.Value)
		}
		if err := e.encoder.WriteField(hf); err != nil {
			return nil, fmt.Errorf("hpack encode: field %q: %w", hf.Name, err)
		}
	}
	block := make([]byte, e.buf.Len())
	copy(block, e.buf.Bytes())
	return block, nil
}

// SetMaxDynamicTableSize updates the encoder's dynamic table capacity to the
// peer's SETTINGS_HEADER_TABLE_SIZE; the encoder must not exceed it.
func (e *HpackEncoder) SetMaxDynamicTableSize(size uint32) {
	e.encoder.SetMaxDynamicTableSize(size)
}
