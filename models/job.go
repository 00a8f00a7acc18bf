package models

import (
	"path/filepath"
	"strings"
)

// WOFF2Ext is the extension given to every converted font.
const WOFF2Ext = ".woff2"

// FontJob pairs an input font filename with the WOFF2 filename it is
// converted to. Both are plain names, relative to the input and output
// directories.
type FontJob struct {
	Input  string
	Output string
}

// NewFontJob derives the output name for the given input filename.
func NewFontJob(input string) FontJob {
	return FontJob{
		Input:  input,
		Output: Stem(input) + WOFF2Ext,
	}
}

// Stem returns name without its extension. Leading dots are part of the
// stem, so ".hidden" has no extension and "a.b.TTF" has stem "a.b".
func Stem(name string) string {
	dir, base := filepath.Split(name)
	i := strings.LastIndexByte(base, '.')
	if i <= 0 || strings.TrimLeft(base[:i], ".") == "" {
		return name
	}
	return dir + base[:i]
}

// WriterJob is a publish destination for converted fonts.
type WriterJob struct {
	Type        string            // "directServe", "s3", "gcs" or "sftp"
	Credentials map[string]string // backend specific access info
}
