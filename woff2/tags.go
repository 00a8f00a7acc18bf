package woff2

// knownTags lists the table tags that have a one-byte index in the WOFF2
// table directory. The position in the slice is the index.
var knownTags = []string{
	"cmap", "head", "hhea", "hmtx", "maxp", "name", "OS/2", "post",
	"cvt ", "fpgm", "glyf", "loca", "prep", "CFF ", "VORG", "EBDT",
	"EBLC", "gasp", "hdmx", "kern", "LTSH", "PCLT", "VDMX", "vhea",
	"vmtx", "BASE", "GDEF", "GPOS", "GSUB", "EBSC", "JSTF", "MATH",
	"CBDT", "CBLC", "COLR", "CPAL", "SVG ", "sbix", "acnt", "avar",
	"bdat", "bloc", "bsln", "cvar", "fdsc", "feat", "fmtx", "fvar",
	"gvar", "hsty", "just", "lcar", "mort", "morx", "opbd", "prop",
	"trak", "Zapf", "Silf", "Glat", "Gloc", "Feat", "Sill",
}

// arbitraryTag is the flag index meaning "a 4-byte tag follows".
const arbitraryTag = 63

var knownTagIndex = func() map[string]byte {
	m := make(map[string]byte, len(knownTags))
	for i, tag := range knownTags {
		m[tag] = byte(i)
	}
	return m
}()

// nullTransformVersion returns the transform version which stores the
// table unchanged. For glyf and loca, version 0 is the glyph transform
// and version 3 is the null transform. Every other table uses 0.
func nullTransformVersion(tag string) byte {
	if tag == "glyf" || tag == "loca" {
		return 3
	}
	return 0
}

// isTransformed reports whether the given version means the table data
// was transformed and a transformLength field is present.
func isTransformed(tag string, version byte) bool {
	if tag == "glyf" || tag == "loca" {
		return version != 3
	}
	return version != 0
}
