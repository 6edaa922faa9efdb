package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidJSON is returned when a request body is not a JSON object.
var ErrInvalidJSON = errors.New("invalid JSON body")

// DecodeJSON reads one JSON value from r into dst. Unknown fields are
// ignored so that clients can send back what they read.
func DecodeJSON(r io.Reader, dst any) error {
	if err := json.NewDecoder(r).Decode(dst); err != nil {
		return ErrInvalidJSON
	}
	return nil
}

// Required reports a missing field.
func Required(field string) error {
	return &FieldError{Field: field, Message: "this field is required"}
}

// IsNull reports whether raw is absent or the JSON literal null.
func IsNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// ParseString decodes a JSON string field.
func ParseString(field string, raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", &FieldError{Field: field, Message: "not a valid string"}
	}
	return s, nil
}

// ParseUUID decodes a JSON string holding a UUID.
func ParseUUID(field string, raw json.RawMessage) (uuid.UUID, error) {
	s, err := ParseString(field, raw)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, &FieldError{Field: field, Message: "must be a valid UUID"}
	}
	return id, nil
}

// ParseOptionalUUID decodes a UUID that may be left blank. Null and ""
// report ok=false so the caller keeps whatever value it already has.
func ParseOptionalUUID(field string, raw json.RawMessage) (id uuid.UUID, ok bool, err error) {
	if IsNull(raw) {
		return uuid.Nil, false, nil
	}
	s, err := ParseString(field, raw)
	if err != nil {
		return uuid.Nil, false, err
	}
	if s == "" {
		return uuid.Nil, false, nil
	}
	id, err = ParseUUID(field, raw)
	if err != nil {
		return uuid.Nil, false, err
	}
	return id, true, nil
}

// ParseDecimal decodes a JSON number or a JSON string holding a number.
// The literal digits are kept so precision checks see what was sent.
func ParseDecimal(field string, raw json.RawMessage) (decimal.Decimal, error) {
	text := string(bytes.TrimSpace(raw))
	if len(text) > 0 && text[0] == '"' {
		s, err := ParseString(field, raw)
		if err != nil {
			return decimal.Decimal{}, err
		}
		text = s
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, &FieldError{Field: field, Message: "a valid number is required"}
	}
	return d, nil
}
