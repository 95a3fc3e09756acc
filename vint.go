package ebml

import (
	"fmt"
	"io"
)

// maxVintWidth is the widest VINT this codec understands: 8 bytes, giving a
// 56-bit payload once the width marker is stripped.
const maxVintWidth = 8

// widthOf scans the first byte of a VINT for its leading width-marker bit
// and returns the total width w (1..8) the VINT occupies, or 0 if the byte
// carries no marker bit at all (which, for a first byte of 0x00, means the
// encoded width would exceed 8 bytes).
func widthOf(firstByte byte) int {
	mask := byte(0x80)
	for w := 1; w <= maxVintWidth; w++ {
		if firstByte&mask != 0 {
			return w
		}
		mask >>= 1
	}
	return 0
}

// allOnesPayload returns the reserved "all payload bits set" value for a
// VINT of the given width — the indeterminate-size sentinel this codec
// rejects.
func allOnesPayload(width int) uint64 {
	return uint64(1)<<(uint(width)*7) - 1
}

// readVintBytes reads the width-marker byte followed by width-1 trailing
// bytes, returning the full raw big-endian value (marker bit included) and
// the width. It does not interpret indeterminate-size or strip the marker;
// callers do that.
func readVintBytes(src io.Reader) (raw uint64, width int, err error) {
	var b [1]byte
	if _, err = io.ReadFull(src, b[:]); err != nil {
		return 0, 0, err
	}

	width = widthOf(b[0])
	if width == 0 {
		return 0, 0, fmt.Errorf("%w: vint width exceeds 8 bytes", ErrCorruptedFileData)
	}

	raw = uint64(b[0])
	if width > 1 {
		rest := make([]byte, width-1)
		if _, err = io.ReadFull(src, rest); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, 0, fmt.Errorf("%w: %w", ErrCorruptedFileData, err)
		}
		for _, bb := range rest {
			raw = raw<<8 | uint64(bb)
		}
	}
	return raw, width, nil
}

// ReadVint reads a size VINT: the width marker is stripped from the
// returned value, and the reserved all-ones payload (indeterminate size) is
// rejected.
func ReadVint(src io.Reader) (value uint64, width int, err error) {
	raw, width, err := readVintBytes(src)
	if err != nil {
		return 0, 0, err
	}

	marker := uint64(1) << (uint(width) * 7)
	value = raw &^ marker // clear the marker bit, keep the payload bits

	if value == allOnesPayload(width) {
		return 0, 0, fmt.Errorf("%w: indeterminate size", ErrUnsupportedFeature)
	}
	return value, width, nil
}

// ReadTagID reads a tag-ID VINT. Unlike ReadVint, the width marker is kept
// as part of the returned value: two IDs that differ only in encoded width
// are distinct tags on the wire.
func ReadTagID(src io.Reader) (id uint64, width int, err error) {
	raw, width, err := readVintBytes(src)
	if err != nil {
		return 0, 0, err
	}
	return raw, width, nil
}

// vintWidthFor returns the minimal VINT width w such that value fits in 7w
// bits, reserving the all-ones payload per width for the indeterminate-size
// sentinel. Returns 0 if value exceeds what 8 bytes can represent.
func vintWidthFor(value uint64) int {
	for w := 1; w <= maxVintWidth; w++ {
		if value < allOnesPayload(w) {
			return w
		}
	}
	return 0
}

// WriteVint writes value as a size VINT using the minimal legal width.
func WriteVint(dst io.Writer, value uint64) error {
	width := vintWidthFor(value)
	if width == 0 {
		return fmt.Errorf("%w: value %d exceeds maximum vint range", ErrUnsupportedFeature, value)
	}
	marker := uint64(1) << (uint(width) * 7)
	return writeRawVint(dst, marker|value, width)
}

// WriteTagID writes id's w raw bytes verbatim, where w is derived from the
// position of id's highest set width-marker bit.
func WriteTagID(dst io.Writer, id uint64) error {
	width := tagIDWidth(id)
	if width == 0 {
		return fmt.Errorf("%w: 0x%X has no valid width marker", ErrInvalidTagID, id)
	}
	return writeRawVint(dst, id, width)
}

// tagIDWidth derives the VINT width of a tag ID from the position of its
// highest set width-marker bit: an ID is only valid if some bit in the
// marker position for some w in 1..8 is set and the remaining high bits
// above that marker are zero.
func tagIDWidth(id uint64) int {
	for w := 1; w <= maxVintWidth; w++ {
		marker := uint64(1) << (uint(w) * 7)
		if id&marker != 0 && id < marker<<1 {
			return w
		}
	}
	return 0
}

func writeRawVint(dst io.Writer, raw uint64, width int) error {
	buf := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		buf[i] = byte(raw)
		raw >>= 8
	}
	_, err := dst.Write(buf)
	return err
}
