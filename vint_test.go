package ebml

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// TestReadVint table-tests ReadVint across valid widths, truncated input,
// and the reserved indeterminate-size payloads.
func TestReadVint(t *testing.T) {
	testCases := []struct {
		name        string
		input       []byte
		expectedVal uint64
		expectedW   int
		expectErr   error
	}{
		{"1-byte value", []byte{0x81}, 1, 1, nil},
		{"1-byte max value", []byte{0xFE}, 126, 1, nil},
		{"2-byte value", []byte{0x40, 0x01}, 1, 2, nil},
		{"2-byte value high", []byte{0x50, 0x11}, 0x1011, 2, nil},
		{"4-byte value", []byte{0x10, 0x00, 0x00, 0x01}, 1, 4, nil},
		{"8-byte value", []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF}, 0x23456789ABCDEF, 8, nil},
		{"invalid vint zero byte", []byte{0x00}, 0, 0, ErrCorruptedFileData},
		{"EOF in second byte", []byte{0x40}, 0, 0, io.ErrUnexpectedEOF},
		{"1-byte indeterminate", []byte{0xFF}, 0, 0, ErrUnsupportedFeature},
		{"2-byte indeterminate", []byte{0x7F, 0xFF}, 0, 0, ErrUnsupportedFeature},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			val, width, err := ReadVint(bytes.NewReader(tc.input))
			if tc.expectErr != nil {
				if err == nil {
					t.Fatalf("expected error %v, got nil", tc.expectErr)
				}
				if !errors.Is(err, tc.expectErr) && !errors.Is(err, io.ErrUnexpectedEOF) {
					t.Errorf("got error %v, want one wrapping %v", err, tc.expectErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if val != tc.expectedVal {
				t.Errorf("value = %d, want %d", val, tc.expectedVal)
			}
			if width != tc.expectedW {
				t.Errorf("width = %d, want %d", width, tc.expectedW)
			}
		})
	}
}

// TestReadTagIDKeepsMarker checks that, unlike ReadVint, the width marker
// survives in the returned ID.
func TestReadTagIDKeepsMarker(t *testing.T) {
	id, width, err := ReadTagID(bytes.NewReader([]byte{0x1A, 0x45, 0xDF, 0xA3}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 0x1A45DFA3 {
		t.Errorf("id = 0x%X, want 0x1A45DFA3", id)
	}
	if width != 4 {
		t.Errorf("width = %d, want 4", width)
	}
}

// TestWriteVintBoundary checks the minimal-width boundary precisely: a
// 1-byte VINT can hold 0..126 (127 = 0x7F, all payload bits set, is
// reserved as the indeterminate-size marker for width 1), so 127 must
// spill into 2 bytes.
func TestWriteVintBoundary(t *testing.T) {
	cases := []struct {
		value uint64
		want  []byte
	}{
		{0, []byte{0x80}},
		{1, []byte{0x81}},
		{125, []byte{0xFD}},
		{126, []byte{0xFE}},
		{127, []byte{0x40, 0x7F}},
	}

	for _, tc := range cases {
		var buf bytes.Buffer
		if err := WriteVint(&buf, tc.value); err != nil {
			t.Fatalf("WriteVint(%d): %v", tc.value, err)
		}
		if !bytes.Equal(buf.Bytes(), tc.want) {
			t.Errorf("WriteVint(%d) = % X, want % X", tc.value, buf.Bytes(), tc.want)
		}
	}
}

func TestWriteTagIDRoundTrip(t *testing.T) {
	ids := []uint64{0x80, 0x1A45DFA3, 0x18538067, 0xFF}
	for _, id := range ids {
		var buf bytes.Buffer
		if err := WriteTagID(&buf, id); err != nil {
			t.Fatalf("WriteTagID(0x%X): %v", id, err)
		}
		got, _, err := ReadTagID(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("ReadTagID: %v", err)
		}
		if got != id {
			t.Errorf("round trip: got 0x%X, want 0x%X", got, id)
		}
	}
}

func TestWriteTagIDRejectsInvalid(t *testing.T) {
	_, err := ReadTagID(bytes.NewReader(nil))
	if !errors.Is(err, io.EOF) {
		t.Errorf("empty input: got %v, want io.EOF", err)
	}

	if err := WriteTagID(&bytes.Buffer{}, 0); err == nil {
		t.Fatal("expected error writing ID 0 (no width marker set)")
	} else if !errors.Is(err, ErrInvalidTagID) {
		t.Errorf("got %v, want ErrInvalidTagID", err)
	}
}
