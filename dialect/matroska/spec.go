// Package matroska is a demonstration dialect layered on top of the
// spec-agnostic ebml codec: it supplies the tag-ID-to-data-type mapping for
// a curated subset of the Matroska/WebM element set, plus a couple of
// typed decode helpers that consume a buffered MasterFull subtree the way
// a full demuxer's segment-info/track-entry parsing would.
//
// It is deliberately not a demuxer: cluster/block/packet data, cues,
// chapters, tags, attachments, and seeking are not provided by the
// underlying codec, which knows no particular dialect, and are not
// reproduced here either.
package matroska

import "github.com/voidcontainers/ebml"

// Element IDs for the subset of Matroska/WebM this dialect understands.
// https://www.matroska.org/technical/specs/index.html
const (
	IDEBMLHeader             = 0x1A45DFA3
	IDEBMLVersion            = 0x4286
	IDEBMLReadVersion        = 0x42F7
	IDEBMLMaxIDLength        = 0x42F2
	IDEBMLMaxSizeLength      = 0x42F3
	IDEBMLDocType            = 0x4282
	IDEBMLDocTypeVersion     = 0x4287
	IDEBMLDocTypeReadVersion = 0x4285

	IDSegment = 0x18538067

	IDSegmentInfo     = 0x1549A966
	IDSegmentUID      = 0x73A4
	IDSegmentFilename = 0x7384
	IDPrevUID         = 0x3CB923
	IDPrevFilename    = 0x3C83AB
	IDNextUID         = 0x3EB923
	IDNextFilename    = 0x3E83BB
	IDTimecodeScale   = 0x2AD7B1
	IDDuration        = 0x4489
	IDDateUTC         = 0x4461
	IDTitle           = 0x7BA9
	IDMuxingApp       = 0x4D80
	IDWritingApp      = 0x5741

	IDTracks         = 0x1654AE6B
	IDTrackEntry     = 0xAE
	IDTrackNumber    = 0xD7
	IDTrackUID       = 0x73C5
	IDTrackType      = 0x83
	IDTrackName      = 0x536E
	IDLanguage       = 0x22B59C
	IDCodecID        = 0x86
	IDCodecPrivate   = 0x63A2
	IDVideo          = 0xE0
	IDAudio          = 0xE1
	IDFlagInterlaced = 0x9A
	IDPixelWidth     = 0xB0
	IDPixelHeight    = 0xBA
	IDDisplayWidth   = 0x54B0
	IDDisplayHeight  = 0x54BA

	IDSamplingFrequency = 0xB5
	IDChannels          = 0x9F
	IDBitDepth          = 0x6264
)

// dataTypes maps each ID this dialect recognizes to its data type. IDs it
// does not list are reported unknown, and ebml.Iterator defaults those to
// Binary rather than failing.
var dataTypes = map[uint64]ebml.TagDataType{
	IDEBMLHeader:             ebml.Master,
	IDEBMLVersion:            ebml.UnsignedInt,
	IDEBMLReadVersion:        ebml.UnsignedInt,
	IDEBMLMaxIDLength:        ebml.UnsignedInt,
	IDEBMLMaxSizeLength:      ebml.UnsignedInt,
	IDEBMLDocType:            ebml.Utf8,
	IDEBMLDocTypeVersion:     ebml.UnsignedInt,
	IDEBMLDocTypeReadVersion: ebml.UnsignedInt,

	IDSegment: ebml.Master,

	IDSegmentInfo:     ebml.Master,
	IDSegmentUID:      ebml.Binary,
	IDSegmentFilename: ebml.Utf8,
	IDPrevUID:         ebml.Binary,
	IDPrevFilename:    ebml.Utf8,
	IDNextUID:         ebml.Binary,
	IDNextFilename:    ebml.Utf8,
	IDTimecodeScale:   ebml.UnsignedInt,
	IDDuration:        ebml.Float,
	IDDateUTC:         ebml.Binary, // date is a fixed-width signed offset, not parsed further here
	IDTitle:           ebml.Utf8,
	IDMuxingApp:       ebml.Utf8,
	IDWritingApp:      ebml.Utf8,

	IDTracks:         ebml.Master,
	IDTrackEntry:     ebml.Master,
	IDTrackNumber:    ebml.UnsignedInt,
	IDTrackUID:       ebml.UnsignedInt,
	IDTrackType:      ebml.UnsignedInt,
	IDTrackName:      ebml.Utf8,
	IDLanguage:       ebml.Utf8,
	IDCodecID:        ebml.Utf8,
	IDCodecPrivate:   ebml.Binary,
	IDVideo:          ebml.Master,
	IDAudio:          ebml.Master,
	IDFlagInterlaced: ebml.UnsignedInt,
	IDPixelWidth:     ebml.UnsignedInt,
	IDPixelHeight:    ebml.UnsignedInt,
	IDDisplayWidth:   ebml.UnsignedInt,
	IDDisplayHeight:  ebml.UnsignedInt,

	IDSamplingFrequency: ebml.Float,
	IDChannels:          ebml.UnsignedInt,
	IDBitDepth:          ebml.UnsignedInt,
}

// Specification is the ebml.Specification for this dialect.
var Specification ebml.Specification = ebml.MapSpecification(dataTypes)

// BufferIDs lists the master IDs a caller typically wants materialized as
// whole subtrees rather than streamed incrementally. SegmentInfo and
// TrackEntry are small, bounded, and most naturally consumed as one value;
// Video and Audio are included too, since DecodeTrackEntry expects its
// Video/Audio children to already arrive as buffered subtrees rather than
// flattened MasterStart/.../MasterEnd siblings.
var BufferIDs = []uint64{IDSegmentInfo, IDTrackEntry, IDVideo, IDAudio}
