// Package woff2 reads and writes WOFF2 font containers.
//
// Tables are always stored with the null transform: glyf and loca keep
// their sfnt layout and only the brotli stream shrinks the font. Files
// with transformed tables, as written by most other encoders, can be
// inspected with [ReadHeader] but not decoded.
package woff2

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"github.com/andybalholm/brotli"
)

const (
	// Signature is the magic number at the start of every WOFF2 file.
	Signature = 0x774F4632 // "wOF2"

	headerSize = 48

	flavorCollection = 0x74746366 // "ttcf"

	// headFlagsTransformed is bit 11 of head.flags, set when a lossless
	// modifying transform has been applied to the font.
	headFlagsTransformed = 1 << 11
)

var (
	ErrSignature   = errors.New("woff2: invalid signature")
	ErrTruncated   = errors.New("woff2: unexpected end of data")
	ErrTransformed = errors.New("woff2: transformed tables are not supported")
	ErrNoTables    = errors.New("woff2: font has no tables")
)

// Options control the brotli stream.
type Options struct {
	Quality    int // 0-11
	WindowBits int // 10-24
}

// DefaultOptions returns the strongest compression settings, which is
// what font tooling normally uses for WOFF2.
func DefaultOptions() Options {
	return Options{
		Quality:    brotli.BestCompression,
		WindowBits: 22,
	}
}

// fileHeader is the fixed 48 byte WOFF2 header.
type fileHeader struct {
	Signature           uint32
	Flavor              uint32
	Length              uint32
	NumTables           uint16
	Reserved            uint16
	TotalSfntSize       uint32
	TotalCompressedSize uint32
	MajorVersion        uint16
	MinorVersion        uint16
	MetaOffset          uint32
	MetaLength          uint32
	MetaOrigLength      uint32
	PrivOffset          uint32
	PrivLength          uint32
}

// Encode packs the tables of an sfnt font into a WOFF2 file.
// Flavor is the sfnt version of the source font, e.g. 0x00010000 for
// TrueType outlines or "OTTO" for CFF outlines.
//
// The DSIG table is dropped, since the signature cannot survive the
// repacking. The tables map is not modified.
func Encode(flavor uint32, tables map[string][]byte, opts Options) ([]byte, error) {
	if flavor == flavorCollection {
		return nil, errors.New("woff2: font collections are not supported")
	}

	tags := make([]string, 0, len(tables))
	for tag, data := range tables {
		if data == nil || tag == "DSIG" {
			continue
		}
		if len(tag) != 4 {
			return nil, fmt.Errorf("woff2: invalid table tag %q", tag)
		}
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return nil, ErrNoTables
	}
	if tables["head"] == nil {
		return nil, errors.New("woff2: missing head table")
	}
	sortTags(tags)

	var dir []byte
	var stream bytes.Buffer
	sfntSize := uint32(12 + 16*len(tags))
	for _, tag := range tags {
		data := tables[tag]
		if tag == "head" {
			data = markTransformed(data)
		}

		flags := nullTransformVersion(tag) << 6
		if idx, ok := knownTagIndex[tag]; ok {
			dir = append(dir, flags|idx)
		} else {
			dir = append(dir, flags|arbitraryTag)
			dir = append(dir, tag...)
		}
		dir = appendUIntBase128(dir, uint32(len(data)))

		stream.Write(data)
		sfntSize += pad4(uint32(len(data)))
	}

	compressed, err := compress(stream.Bytes(), opts)
	if err != nil {
		return nil, err
	}

	total := pad4(uint32(headerSize + len(dir) + len(compressed)))
	hdr := fileHeader{
		Signature:           Signature,
		Flavor:              flavor,
		Length:              total,
		NumTables:           uint16(len(tags)),
		TotalSfntSize:       sfntSize,
		TotalCompressedSize: uint32(len(compressed)),
		MajorVersion:        1,
		MinorVersion:        0,
	}

	out := bytes.NewBuffer(make([]byte, 0, total))
	_ = binary.Write(out, binary.BigEndian, hdr)
	out.Write(dir)
	out.Write(compressed)
	for out.Len() < int(total) {
		out.WriteByte(0)
	}
	return out.Bytes(), nil
}

// sortTags orders the tables by tag, except that loca directly follows
// glyf.
func sortTags(tags []string) {
	sort.Strings(tags)
	locaAt, glyfAt := -1, -1
	for i, tag := range tags {
		switch tag {
		case "loca":
			locaAt = i
		case "glyf":
			glyfAt = i
		}
	}
	if locaAt < 0 || glyfAt < 0 {
		return
	}
	// glyf < loca in byte order, so loca only ever moves forward
	copy(tags[glyfAt+2:locaAt+1], tags[glyfAt+1:locaAt])
	tags[glyfAt+1] = "loca"
}

// markTransformed returns a copy of the head table with bit 11 of the
// flags field set.
func markTransformed(head []byte) []byte {
	res := append([]byte(nil), head...)
	if len(res) >= 18 {
		flags := binary.BigEndian.Uint16(res[16:18])
		binary.BigEndian.PutUint16(res[16:18], flags|headFlagsTransformed)
	}
	return res
}

func compress(data []byte, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterOptions(&buf, brotli.WriterOptions{
		Quality: opts.Quality,
		LGWin:   opts.WindowBits,
	})
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("woff2: compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("woff2: compress: %w", err)
	}
	return buf.Bytes(), nil
}

func pad4(n uint32) uint32 {
	return (n + 3) &^ 3
}
