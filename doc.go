// Package ebml implements a spec-agnostic codec for the Extensible Binary
// Meta-Language (EBML), the container format underlying Matroska and WebM.
//
// EBML encodes a tree of tagged, length-prefixed elements using
// variable-length integers (VINTs). This package knows nothing about any
// particular EBML dialect: the mapping from a tag ID to its data type is
// supplied by the caller through the Specification interface, so the same
// codec serves Matroska, WebM, or any other EBML-based format.
//
// The package is built from three pieces:
//
//   - The VINT and typed-value codec (ReadVint, WriteVint, ReadUint,
//     ReadFloat, and friends), which handles the bit-level encoding of
//     variable-width integers and leaf payloads.
//   - Iterator, a pull-based parser that walks an input stream and
//     produces a lazy sequence of Events.
//   - Writer, which serializes Events back into a well-formed EBML byte
//     stream.
//
// Example usage:
//
//	it := ebml.NewIterator(r, spec, nil)
//	for {
//	    ev, err := it.Next()
//	    if err != nil {
//	        if errors.Is(err, io.EOF) {
//	            break
//	        }
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("%+v\n", ev)
//	}
package ebml
