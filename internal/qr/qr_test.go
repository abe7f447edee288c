package qr

import (
	"bytes"
	"errors"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	cases := []struct{ roll, name string }{
		{"101", "Ayush Singh"},
		{"110", "Arjun Mehta"},
		{"", ""},
		{"204", "Zoë"},
	}
	for _, tc := range cases {
		payload, err := Marshal(tc.roll, tc.name)
		if err != nil {
			t.Fatalf("marshal(%q, %q): %v", tc.roll, tc.name, err)
		}
		p, err := Decode(payload)
		if err != nil {
			t.Fatalf("decode(%q): %v", payload, err)
		}
		if p.RollNo == nil || *p.RollNo != tc.roll {
			t.Fatalf("roll round trip: got %v, want %q", p.RollNo, tc.roll)
		}
		if p.Name == nil || *p.Name != tc.name {
			t.Fatalf("name round trip: got %v, want %q", p.Name, tc.name)
		}
	}
}

func TestMarshalIsDeterministic(t *testing.T) {
	a, err := Marshal("101", "Ayush Singh")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, _ := Marshal("101", "Ayush Singh")
	if a != b {
		t.Fatalf("payloads differ: %q vs %q", a, b)
	}
	if a != `{"roll_no":"101","name":"Ayush Singh"}` {
		t.Fatalf("unexpected payload %q", a)
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, data := range []string{
		"not json",
		"{broken",
		"",
		"null",
		"[1,2]",
		`"just a string"`,
		"42",
		`{"roll_no": 101}`, // key present with wrong type
	} {
		if _, err := Decode(data); !errors.Is(err, ErrMalformedPayload) {
			t.Fatalf("decode(%q): expected ErrMalformedPayload, got %v", data, err)
		}
	}
}

func TestDecodeMissingKeysYieldsNilFields(t *testing.T) {
	p, err := Decode(`{"name":"Ayush Singh"}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.RollNo != nil {
		t.Fatalf("expected nil roll_no, got %q", *p.RollNo)
	}
	if p.Name == nil || *p.Name != "Ayush Singh" {
		t.Fatalf("expected name set, got %v", p.Name)
	}

	p, err = Decode(`{}`)
	if err != nil {
		t.Fatalf("decode empty object: %v", err)
	}
	if p.RollNo != nil || p.Name != nil {
		t.Fatalf("expected both fields nil, got %v %v", p.RollNo, p.Name)
	}
}

func TestImageProducesPNG(t *testing.T) {
	png, err := Image("101", "Ayush Singh")
	if err != nil {
		t.Fatalf("image: %v", err)
	}
	sig := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	if !bytes.HasPrefix(png, sig) {
		t.Fatalf("expected PNG signature, got % x", png[:8])
	}
}
