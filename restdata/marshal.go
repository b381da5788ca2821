// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"bytes"
	"github.com/ugorji/go/codec"
	"io"
	"mime"
	"reflect"
	"strings"
)

// RawJSON is a value that is already JSON encoded.  Encode passes it
// through unchanged.
type RawJSON []byte

// jsonHandle returns a codec handle that decodes untyped objects as
// string-keyed maps, so that decoded values match what encoding/json
// would have produced.
func jsonHandle() *codec.JsonHandle {
	h := &codec.JsonHandle{}
	h.MapType = reflect.TypeOf(map[string]interface{}(nil))
	return h
}

// Encode serializes v as JSON.
func Encode(v interface{}) ([]byte, error) {
	if raw, isRaw := v.(RawJSON); isRaw {
		return []byte(raw), nil
	}
	var out []byte
	encoder := codec.NewEncoderBytes(&out, jsonHandle())
	err := encoder.Encode(v)
	return out, err
}

// IsJSON determines whether a media type names some variant of JSON.
func IsJSON(mediaType string) bool {
	switch mediaType {
	case "text/json", JSONMediaType:
		return true
	}
	return strings.HasSuffix(mediaType, "+json")
}

// Decode tries to decode a restdata object from a reader, such as an
// HTTP request or response.  out must be a pointer type.
func Decode(contentType string, r io.Reader, out interface{}) error {
	if contentType == "" {
		// RFC 7231 section 3.1.1.5
		contentType = "application/octet-stream"
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return err
	}
	if !IsJSON(mediaType) {
		return ErrUnsupportedMediaType{Type: mediaType}
	}

	decoder := codec.NewDecoder(r, jsonHandle())
	return decoder.Decode(out)
}

// DecodeBytes is Decode for a body that has already been read.
func DecodeBytes(contentType string, in []byte, out interface{}) error {
	return Decode(contentType, bytes.NewReader(in), out)
}
