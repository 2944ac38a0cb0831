package persistence

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ValidateFilename rejects anything that is not a single path segment, and
// the names of the application's own config and database files.
func ValidateFilename(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("name must not be empty")
	case name == "." || name == "..":
		return fmt.Errorf("name must not be a relative directory reference")
	case strings.ContainsAny(name, "/\\"):
		return fmt.Errorf("name must not contain path separators")
	case strings.ContainsRune(name, 0):
		return fmt.Errorf("name must not contain NUL bytes")
	case IsReserved(name):
		return fmt.Errorf("name is reserved for application files")
	}

	return nil
}

func encodeDocument(data any) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}

// decodeDocument parses exactly one JSON value. Numbers are kept as
// json.Number so they are written back with the same digits.
func decodeDocument(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = fmt.Errorf("unexpected data after top-level value")
		}
		return nil, err
	}

	return v, nil
}
