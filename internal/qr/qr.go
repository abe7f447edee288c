// Package qr maps a student identity to and from the scannable check-in
// payload. The payload carried by the QR image is the UTF-8 JSON object
// {"roll_no": ..., "name": ...}; encoding is deterministic for a given
// identity. The codec is a pure transform with no store dependency.
package qr

import (
	"encoding/json"
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// ErrMalformedPayload reports a scanned payload that is not a JSON object.
var ErrMalformedPayload = errors.New("malformed check-in payload")

// Payload is the decoded check-in identity. Fields are pointers because a
// valid JSON object may omit either key; missing keys decode to nil rather
// than failing.
type Payload struct {
	RollNo *string `json:"roll_no"`
	Name   *string `json:"name"`
}

// Marshal builds the canonical JSON payload for an identity.
func Marshal(rollNo, name string) (string, error) {
	b, err := json.Marshal(Payload{RollNo: &rollNo, Name: &name})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Image renders the identity payload as a PNG QR code.
func Image(rollNo, name string) ([]byte, error) {
	payload, err := Marshal(rollNo, name)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(payload, qrcode.Medium, 300)
}

// Decode parses a scanned payload. Anything that is not a JSON object
// (invalid JSON, null, arrays, scalars) fails with ErrMalformedPayload; an
// object missing roll_no or name succeeds with the field left nil.
func Decode(data string) (Payload, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(data), &obj); err != nil || obj == nil {
		return Payload{}, fmt.Errorf("%w: not a JSON object", ErrMalformedPayload)
	}
	var p Payload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return p, nil
}
