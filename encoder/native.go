package encoder

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/header"

	"fontconv/logger"
	"fontconv/woff2"
)

// EncodeNative converts a TrueType or OpenType file to WOFF2 in process.
// Tables are packed as they are, so only a broken table directory or a
// missing head table rejects the font. The full parse that follows is a
// check only; fonts it cannot model, such as CFF2, still convert.
func EncodeNative(ctx context.Context, input string, opts EncodeOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(data)

	info, err := header.Read(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read table directory: %w", err)
	}
	tables := make(map[string][]byte, len(info.Toc))
	for name := range info.Toc {
		body, err := info.ReadTableBytes(r, name)
		if err != nil {
			return nil, fmt.Errorf("cannot read %q table: %w", name, err)
		}
		tables[name] = body
	}

	if font, err := sfnt.Read(r); err != nil {
		logger.Warnf("%s: packing tables unchecked: %v", input, err)
	} else {
		logger.Debugf("loaded %s: %q, %d glyphs", input, font.FamilyName, font.NumGlyphs())
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return woff2.Encode(info.ScalerType, tables, woff2.Options{
		Quality:    opts.Quality,
		WindowBits: opts.WindowBits,
	})
}
