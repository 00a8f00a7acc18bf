package woff2

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"seehuhn.de/go/sfnt/header"
)

// Header is the decoded fixed part of a WOFF2 file.
type Header struct {
	Flavor              uint32
	Length              uint32
	NumTables           int
	TotalSfntSize       uint32
	TotalCompressedSize uint32
	MajorVersion        uint16
	MinorVersion        uint16
}

// TableEntry is one record of the WOFF2 table directory.
type TableEntry struct {
	Tag              string
	TransformVersion byte
	OrigLength       uint32
	TransformLength  uint32 // only set for transformed tables
}

// Transformed reports whether the table data is stored transformed.
func (e TableEntry) Transformed() bool {
	return isTransformed(e.Tag, e.TransformVersion)
}

// storedLength is the number of bytes the table occupies in the
// decompressed stream.
func (e TableEntry) storedLength() uint32 {
	if e.Transformed() {
		return e.TransformLength
	}
	return e.OrigLength
}

// Font is a decoded WOFF2 font.
type Font struct {
	Flavor uint32
	Tables map[string][]byte
}

// ReadHeader decodes the file header and the table directory. It
// returns the offset of the compressed stream as the third value.
func ReadHeader(data []byte) (*Header, []TableEntry, int, error) {
	if len(data) < headerSize {
		return nil, nil, 0, ErrTruncated
	}
	var raw fileHeader
	if err := binary.Read(bytes.NewReader(data[:headerSize]), binary.BigEndian, &raw); err != nil {
		return nil, nil, 0, err
	}
	if raw.Signature != Signature {
		return nil, nil, 0, ErrSignature
	}
	if int(raw.Length) != len(data) {
		return nil, nil, 0, fmt.Errorf("woff2: header length %d does not match file size %d",
			raw.Length, len(data))
	}
	if raw.NumTables == 0 {
		return nil, nil, 0, ErrNoTables
	}
	if raw.Flavor == flavorCollection {
		return nil, nil, 0, fmt.Errorf("woff2: font collections are not supported")
	}

	hdr := &Header{
		Flavor:              raw.Flavor,
		Length:              raw.Length,
		NumTables:           int(raw.NumTables),
		TotalSfntSize:       raw.TotalSfntSize,
		TotalCompressedSize: raw.TotalCompressedSize,
		MajorVersion:        raw.MajorVersion,
		MinorVersion:        raw.MinorVersion,
	}

	pos := headerSize
	entries := make([]TableEntry, 0, hdr.NumTables)
	for i := 0; i < hdr.NumTables; i++ {
		if pos >= len(data) {
			return nil, nil, 0, ErrTruncated
		}
		flags := data[pos]
		pos++

		var e TableEntry
		e.TransformVersion = flags >> 6
		if idx := flags & 0x3f; idx == arbitraryTag {
			if pos+4 > len(data) {
				return nil, nil, 0, ErrTruncated
			}
			e.Tag = string(data[pos : pos+4])
			pos += 4
		} else if int(idx) < len(knownTags) {
			e.Tag = knownTags[idx]
		} else {
			return nil, nil, 0, fmt.Errorf("woff2: invalid tag index %d", idx)
		}

		v, n, err := readUIntBase128(data[pos:])
		if err != nil {
			return nil, nil, 0, err
		}
		e.OrigLength = v
		pos += n

		if e.Transformed() {
			v, n, err := readUIntBase128(data[pos:])
			if err != nil {
				return nil, nil, 0, err
			}
			e.TransformLength = v
			pos += n
		}
		entries = append(entries, e)
	}

	if uint64(pos)+uint64(hdr.TotalCompressedSize) > uint64(len(data)) {
		return nil, nil, 0, ErrTruncated
	}
	return hdr, entries, pos, nil
}

// Decode reads a WOFF2 file whose tables all use the null transform.
func Decode(data []byte) (*Font, error) {
	hdr, entries, offset, err := ReadHeader(data)
	if err != nil {
		return nil, err
	}

	var want uint64
	for _, e := range entries {
		if e.Transformed() {
			return nil, fmt.Errorf("%w (table %q, version %d)", ErrTransformed, e.Tag, e.TransformVersion)
		}
		want += uint64(e.storedLength())
	}

	compressed := data[offset : offset+int(hdr.TotalCompressedSize)]
	stream, err := io.ReadAll(io.LimitReader(brotli.NewReader(bytes.NewReader(compressed)), int64(want)+1))
	if err != nil {
		return nil, fmt.Errorf("woff2: decompress: %w", err)
	}
	if uint64(len(stream)) != want {
		return nil, fmt.Errorf("woff2: decompressed %d bytes, directory declares %d", len(stream), want)
	}

	font := &Font{
		Flavor: hdr.Flavor,
		Tables: make(map[string][]byte, len(entries)),
	}
	pos := 0
	for _, e := range entries {
		n := int(e.storedLength())
		if _, dup := font.Tables[e.Tag]; dup {
			return nil, fmt.Errorf("woff2: duplicate table %q", e.Tag)
		}
		font.Tables[e.Tag] = stream[pos : pos+n]
		pos += n
	}
	return font, nil
}

// WriteSFNT writes the font as a plain sfnt (TTF/OTF) file.
// The checksum adjustment of the head table is recomputed.
func (f *Font) WriteSFNT(w io.Writer) (int64, error) {
	tables := make(map[string][]byte, len(f.Tables))
	for tag, data := range f.Tables {
		tables[tag] = append([]byte(nil), data...)
	}
	return header.Write(w, f.Flavor, tables)
}
