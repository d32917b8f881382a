// Package json routes all JSON encoding through sonic so the codec can be
// swapped in one place.
package json

import (
	"github.com/bytedance/sonic"
)

// Marshal serializes v into JSON bytes.
func Marshal(v interface{}) ([]byte, error) {
	return sonic.Marshal(v)
}

// MarshalIndent serializes v into pretty-printed JSON bytes.
func MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	return sonic.MarshalIndent(v, prefix, indent)
}

// Unmarshal parses JSON bytes into v.
func Unmarshal(data []byte, v interface{}) error {
	return sonic.Unmarshal(data, v)
}

// MarshalString serializes v into a JSON string.
func MarshalString(v interface{}) (string, error) {
	return sonic.MarshalString(v)
}

// UnmarshalString parses a JSON string into v.
func UnmarshalString(data string, v interface{}) error {
	return sonic.UnmarshalString(data, v)
}
