package matroska

import (
	"fmt"

	"github.com/voidcontainers/ebml"
)

// SegmentInfo holds the fields of a Matroska SegmentInfo element this
// dialect understands: title, duration, timecode scale, muxing/writing
// app, and the segment's UID linkage fields.
type SegmentInfo struct {
	UID           []byte
	Filename      string
	PrevUID       []byte
	PrevFile      string
	NextUID       []byte
	NextFile      string
	TimecodeScale uint64
	Duration      float64
	DateUTC       []byte
	Title         string
	MuxingApp     string
	WritingApp    string
}

// DecodeSegmentInfo builds a SegmentInfo from a buffered MasterFullEvent for
// IDSegmentInfo by walking its children once and assigning each recognized
// field.
func DecodeSegmentInfo(ev ebml.Event) (*SegmentInfo, error) {
	if ev.Kind != ebml.MasterFullEvent || ev.ID != IDSegmentInfo {
		return nil, errUnexpectedEvent(IDSegmentInfo, ev)
	}

	info := &SegmentInfo{TimecodeScale: 1000000} // default, per the Matroska spec

	for _, child := range ev.Children {
		switch child.ID {
		case IDSegmentUID:
			info.UID = child.BinaryValue
		case IDSegmentFilename:
			info.Filename = child.StringValue
		case IDPrevUID:
			info.PrevUID = child.BinaryValue
		case IDPrevFilename:
			info.PrevFile = child.StringValue
		case IDNextUID:
			info.NextUID = child.BinaryValue
		case IDNextFilename:
			info.NextFile = child.StringValue
		case IDTimecodeScale:
			info.TimecodeScale = child.UintValue
		case IDDuration:
			info.Duration = child.FloatValue
		case IDDateUTC:
			info.DateUTC = child.BinaryValue
		case IDTitle:
			info.Title = child.StringValue
		case IDMuxingApp:
			info.MuxingApp = child.StringValue
		case IDWritingApp:
			info.WritingApp = child.StringValue
		}
	}
	return info, nil
}

// VideoInfo holds the video-specific fields of a TrackEntry.
type VideoInfo struct {
	PixelWidth, PixelHeight     uint64
	DisplayWidth, DisplayHeight uint64
	Interlaced                  bool
}

// AudioInfo holds the audio-specific fields of a TrackEntry.
type AudioInfo struct {
	SamplingFrequency float64
	Channels          uint64
	BitDepth          uint64
}

// TrackInfo holds the fields of a Matroska TrackEntry element this dialect
// understands, including its optional nested Video or Audio info.
type TrackInfo struct {
	Number       uint64
	UID          uint64
	Type         uint64
	Name         string
	Language     string
	CodecID      string
	CodecPrivate []byte
	Video        *VideoInfo
	Audio        *AudioInfo
}

// DecodeTrackEntry builds a TrackInfo from a buffered MasterFullEvent for
// IDTrackEntry. Video and Audio children must themselves be buffered
// MasterFullEvents (see BufferIDs); decodeVideo/decodeAudio walk their
// children the same way DecodeSegmentInfo walks IDSegmentInfo's.
func DecodeTrackEntry(ev ebml.Event) (*TrackInfo, error) {
	if ev.Kind != ebml.MasterFullEvent || ev.ID != IDTrackEntry {
		return nil, errUnexpectedEvent(IDTrackEntry, ev)
	}

	track := &TrackInfo{Language: "eng"} // default, per the Matroska spec

	for _, child := range ev.Children {
		switch child.ID {
		case IDTrackNumber:
			track.Number = child.UintValue
		case IDTrackUID:
			track.UID = child.UintValue
		case IDTrackType:
			track.Type = child.UintValue
		case IDTrackName:
			track.Name = child.StringValue
		case IDLanguage:
			track.Language = child.StringValue
		case IDCodecID:
			track.CodecID = child.StringValue
		case IDCodecPrivate:
			track.CodecPrivate = child.BinaryValue
		case IDVideo:
			track.Video = decodeVideo(child)
		case IDAudio:
			track.Audio = decodeAudio(child)
		}
	}
	return track, nil
}

func decodeVideo(ev ebml.Event) *VideoInfo {
	v := &VideoInfo{}
	for _, child := range ev.Children {
		switch child.ID {
		case IDPixelWidth:
			v.PixelWidth = child.UintValue
		case IDPixelHeight:
			v.PixelHeight = child.UintValue
		case IDDisplayWidth:
			v.DisplayWidth = child.UintValue
		case IDDisplayHeight:
			v.DisplayHeight = child.UintValue
		case IDFlagInterlaced:
			v.Interlaced = child.UintValue != 0
		}
	}
	if v.DisplayWidth == 0 {
		v.DisplayWidth = v.PixelWidth
	}
	if v.DisplayHeight == 0 {
		v.DisplayHeight = v.PixelHeight
	}
	return v
}

func decodeAudio(ev ebml.Event) *AudioInfo {
	a := &AudioInfo{SamplingFrequency: 8000.0, Channels: 1}
	for _, child := range ev.Children {
		switch child.ID {
		case IDSamplingFrequency:
			a.SamplingFrequency = child.FloatValue
		case IDChannels:
			a.Channels = child.UintValue
		case IDBitDepth:
			a.BitDepth = child.UintValue
		}
	}
	return a
}

func errUnexpectedEvent(wantID uint64, ev ebml.Event) error {
	return &unexpectedEventError{wantID: wantID, gotID: ev.ID, gotKind: ev.Kind}
}

type unexpectedEventError struct {
	wantID  uint64
	gotID   uint64
	gotKind ebml.EventKind
}

func (e *unexpectedEventError) Error() string {
	return fmt.Sprintf("matroska: expected a buffered MasterFull for 0x%X, got %s for 0x%X",
		e.wantID, e.gotKind, e.gotID)
}
