// Package xml provides an XML codec implementation.
package xml

import (
	"encoding/xml"

	"github.com/zoobzio/verity"
)

// ContentType is the MIME type produced by this codec.
const ContentType = "application/xml"

// xmlCodec implements verity.Codec for XML.
type xmlCodec struct{}

// New returns an XML codec.
func New() verity.Codec {
	return &xmlCodec{}
}

// ContentType returns the MIME type for XML.
func (c *xmlCodec) ContentType() string {
	return ContentType
}

// Marshal encodes v as an XML document with a declaration.
// A nil v encodes to nothing.
func (c *xmlCodec) Marshal(v any) ([]byte, error) {
	data, err := xml.Marshal(v)
	if err != nil || len(data) == 0 {
		return data, err
	}
	return append([]byte(xml.Header), data...), nil
}

// Unmarshal decodes XML data into v.
func (c *xmlCodec) Unmarshal(data []byte, v any) error {
	return xml.Unmarshal(data, v)
}
