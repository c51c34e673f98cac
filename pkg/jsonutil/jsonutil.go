// Package jsonutil wraps github.com/go-json-experiment/json for the
// report pipeline. Scanner exports are decoded into generic trees
// (map[string]any, []any, float64, string, bool, nil) and reports are
// encoded with stable indentation.
//
// Usage:
//
//	var tree any
//	if err := jsonutil.Unmarshal(data, &tree); err != nil {
//	    off, _ := jsonutil.ErrorOffset(err)
//	    ...
//	}
package jsonutil

import (
	"errors"
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Unmarshal parses the JSON-encoded data and stores the result in v.
func Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// UnmarshalTree parses data into a generic JSON tree.
func UnmarshalTree(data []byte) (any, error) {
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// Marshal returns the JSON encoding of v.
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// MarshalIndent returns the indented JSON encoding of v.
func MarshalIndent(v any, indent string) ([]byte, error) {
	return json.Marshal(v, jsontext.WithIndent(indent))
}

// MarshalWrite writes the indented JSON encoding of v to w, followed
// by a newline.
func MarshalWrite(w io.Writer, v any, indent string) error {
	if err := json.MarshalWrite(w, v, jsontext.WithIndent(indent)); err != nil {
		return err
	}
	_, err := w.Write([]byte{'\n'})
	return err
}

// Valid reports whether data is a valid JSON encoding.
func Valid(data []byte) bool {
	return jsontext.Value(data).IsValid()
}

// ErrorOffset returns the byte offset of a syntax error, if err carries one.
func ErrorOffset(err error) (int64, bool) {
	var se *jsontext.SyntacticError
	if errors.As(err, &se) {
		return se.ByteOffset, true
	}
	return 0, false
}
