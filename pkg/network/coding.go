package network

import (
	"bytes"
	"encoding/json"
	"encoding/xml"

	"github.com/PuerkitoBio/goquery"
	"gopkg.in/yaml.v3"
)

const contentTypeJSON = "application/json"

// Encoding selects how a request body is serialized. Only EncodingJSON
// produces bytes today; other values are accepted and send no body.
type Encoding string

const EncodingJSON Encoding = "json"

// encode serializes v, returning nil when the encoding has no serializer or marshalling fails.
func (e Encoding) encode(v any) []byte {
	if v == nil || e != EncodingJSON {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}

// Decoding turns a response body into T. ok is false when the body does not fit T.
type Decoding[T any] interface {
	Decode(data []byte) (value T, ok bool)
}

// DecodingFunc lets a plain function act as a Decoding.
type DecodingFunc[T any] func(data []byte) (T, bool)

// Decode calls f.
func (f DecodingFunc[T]) Decode(data []byte) (T, bool) { return f(data) }

// JSONDecoding decodes JSON bodies.
type JSONDecoding[T any] struct{}

// Decode unmarshals data with encoding/json; missing fields keep their zero value.
func (JSONDecoding[T]) Decode(data []byte) (T, bool) {
	return unmarshalInto[T](json.Unmarshal, data)
}

// XMLDecoding decodes XML bodies.
type XMLDecoding[T any] struct{}

// Decode unmarshals data with encoding/xml.
func (XMLDecoding[T]) Decode(data []byte) (T, bool) {
	return unmarshalInto[T](xml.Unmarshal, data)
}

// YAMLDecoding decodes YAML bodies.
type YAMLDecoding[T any] struct{}

// Decode unmarshals data with yaml.v3.
func (YAMLDecoding[T]) Decode(data []byte) (T, bool) {
	return unmarshalInto[T](yaml.Unmarshal, data)
}

// HTMLDecoding parses HTML bodies into a goquery document.
type HTMLDecoding struct{}

// Decode parses data as an HTML document.
func (HTMLDecoding) Decode(data []byte) (*goquery.Document, bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}
	return doc, true
}

func unmarshalInto[T any](fn func([]byte, any) error, data []byte) (T, bool) {
	var v T
	if err := fn(data, &v); err != nil {
		var zero T
		return zero, false
	}
	return v, true
}
