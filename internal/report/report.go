// Package report serializes analytics reports for output.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Supported formats
const (
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

// Encode writes v to w in the given format. JSON output is indented.
func Encode(w io.Writer, format string, v interface{}) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode json report: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.NewEncoder(w).Encode(v); err != nil {
			return fmt.Errorf("failed to encode msgpack report: %w", err)
		}
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
	return nil
}

// Decode reads a value encoded by Encode
func Decode(r io.Reader, format string, v interface{}) error {
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(v); err != nil {
			return fmt.Errorf("failed to decode json: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.NewDecoder(r).Decode(v); err != nil {
			return fmt.Errorf("failed to decode msgpack: %w", err)
		}
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
	return nil
}
