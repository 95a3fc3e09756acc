package ebml

import (
	"errors"
	"fmt"
	"io"
)

const defaultReadBufferSize = 4096

// Option configures an Iterator at construction time.
type Option func(*Iterator)

// WithBufferSize sets the Iterator's initial read-buffer capacity. The
// buffer still grows to fit the largest leaf payload encountered
// regardless of this setting; it never shrinks.
func WithBufferSize(n int) Option {
	return func(it *Iterator) {
		if n > 0 {
			it.buf = make([]byte, 0, n)
		}
	}
}

type openMaster struct {
	id        uint64
	remaining uint64
}

// Iterator pull-parses an EBML byte stream into a lazy sequence of Events.
// It is not safe for concurrent use; one Iterator is owned by one task for
// the duration of one parse.
type Iterator struct {
	src  io.Reader
	spec Specification

	bufferSet map[uint64]bool
	stack     []openMaster
	buf       []byte

	ended bool
}

// NewIterator constructs an Iterator over src using spec to resolve each
// tag's data type. Any ID in bufferIDs is materialized as a single
// MasterFullEvent rather than a MasterStartEvent/MasterEndEvent pair.
func NewIterator(src io.Reader, spec Specification, bufferIDs []uint64, opts ...Option) *Iterator {
	it := &Iterator{
		src:  src,
		spec: spec,
		buf:  make([]byte, 0, defaultReadBufferSize),
	}
	if len(bufferIDs) > 0 {
		it.bufferSet = make(map[uint64]bool, len(bufferIDs))
		for _, id := range bufferIDs {
			it.bufferSet[id] = true
		}
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// Next returns the next Event in document order, or io.EOF once the input
// is exhausted at a depth-zero element boundary. Any other error is fatal:
// the Iterator transitions to its terminal state and every subsequent call
// returns io.EOF without attempting to resynchronize.
func (it *Iterator) Next() (Event, error) {
	if it.ended {
		return Event{}, io.EOF
	}

	// Close out any master whose payload has been fully consumed before
	// reading anything further.
	if n := len(it.stack); n > 0 && it.stack[n-1].remaining == 0 {
		id := it.stack[n-1].id
		it.stack = it.stack[:n-1]
		return MasterEnd(id), nil
	}

	id, idWidth, err := ReadTagID(it.src)
	if err != nil {
		if errors.Is(err, io.EOF) {
			if len(it.stack) == 0 {
				it.ended = true
				return Event{}, io.EOF
			}
			err = fmt.Errorf("%w: unexpected EOF reading tag id", ErrCorruptedFileData)
		}
		return it.fail(err)
	}

	size, sizeWidth, err := ReadVint(it.src)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = fmt.Errorf("%w: unexpected EOF reading element size", ErrCorruptedFileData)
		}
		return it.fail(err)
	}

	consumed := uint64(idWidth+sizeWidth) + size
	if n := len(it.stack); n > 0 {
		top := &it.stack[n-1]
		if consumed > top.remaining {
			return it.fail(fmt.Errorf("%w: child 0x%X overruns parent 0x%X", ErrCorruptedFileData, id, top.id))
		}
		top.remaining -= consumed
	}

	dataType, known := it.spec.DataTypeOf(id)
	if !known {
		dataType = Binary
	}

	if dataType == Master {
		if it.bufferSet[id] {
			children, err := it.parseSubtree(size)
			if err != nil {
				return it.fail(err)
			}
			return MasterFull(id, children), nil
		}
		it.stack = append(it.stack, openMaster{id: id, remaining: size})
		return MasterStart(id), nil
	}

	payload, err := it.readShared(size)
	if err != nil {
		return it.fail(err)
	}
	ev, err := decodeLeaf(id, dataType, payload)
	if err != nil {
		return it.fail(err)
	}
	return ev, nil
}

// parseSubtree recursively consumes exactly `remaining` bytes worth of
// sibling elements and returns them as a flat, ordered Event slice suitable
// for a MasterFullEvent's Children — nested masters not in the buffer set
// are still expanded in place as MasterStart/.../MasterEnd within this
// slice, since the whole subtree must be self-contained.
func (it *Iterator) parseSubtree(remaining uint64) ([]Event, error) {
	var events []Event
	for remaining > 0 {
		id, idWidth, err := ReadTagID(it.src)
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = fmt.Errorf("%w: unexpected EOF reading tag id", ErrCorruptedFileData)
			}
			return nil, err
		}
		size, sizeWidth, err := ReadVint(it.src)
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = fmt.Errorf("%w: unexpected EOF reading element size", ErrCorruptedFileData)
			}
			return nil, err
		}

		consumed := uint64(idWidth+sizeWidth) + size
		if consumed > remaining {
			return nil, fmt.Errorf("%w: child 0x%X overruns parent", ErrCorruptedFileData, id)
		}
		remaining -= consumed

		dataType, known := it.spec.DataTypeOf(id)
		if !known {
			dataType = Binary
		}

		if dataType == Master {
			children, err := it.parseSubtree(size)
			if err != nil {
				return nil, err
			}
			if it.bufferSet[id] {
				events = append(events, MasterFull(id, children))
			} else {
				events = append(events, MasterStart(id))
				events = append(events, children...)
				events = append(events, MasterEnd(id))
			}
			continue
		}

		payload, err := it.readOwned(size)
		if err != nil {
			return nil, err
		}
		ev, err := decodeLeaf(id, dataType, payload)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// readShared reads size bytes into the Iterator's single reused buffer,
// which grows monotonically to fit the largest payload encountered (spec
// §4.3.4). Valid only until the next call to Next.
func (it *Iterator) readShared(size uint64) ([]byte, error) {
	n := int(size)
	if cap(it.buf) < n {
		it.buf = make([]byte, n)
	} else {
		it.buf = it.buf[:n]
	}
	if n > 0 {
		if _, err := io.ReadFull(it.src, it.buf); err != nil {
			return nil, wrapShortRead(err)
		}
	}
	return it.buf, nil
}

// readOwned reads size bytes into a freshly allocated slice, for leaves
// collected inside a buffered MasterFull subtree, which must outlive the
// Iterator's single shared buffer.
func (it *Iterator) readOwned(size uint64) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(it.src, buf); err != nil {
		return nil, wrapShortRead(err)
	}
	return buf, nil
}

func wrapShortRead(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: unexpected EOF mid-element", ErrCorruptedFileData)
	}
	return err
}

func (it *Iterator) fail(err error) (Event, error) {
	it.ended = true
	return Event{}, err
}

func decodeLeaf(id uint64, dataType TagDataType, payload []byte) (Event, error) {
	switch dataType {
	case UnsignedInt:
		v, err := ReadUint(id, payload)
		if err != nil {
			return Event{}, err
		}
		return LeafUint(id, v), nil
	case Integer:
		v, err := ReadInt(id, payload)
		if err != nil {
			return Event{}, err
		}
		return LeafInt(id, v), nil
	case Float:
		v, err := ReadFloat(id, payload)
		if err != nil {
			return Event{}, err
		}
		return LeafFloat(id, v), nil
	case Utf8:
		s, err := ReadUTF8(id, payload)
		if err != nil {
			return Event{}, err
		}
		return LeafString(id, s), nil
	default: // Binary, and unknown IDs defaulted to Binary
		b, _ := ReadBinary(id, payload)
		return LeafBinary(id, b), nil
	}
}
