package encoder

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"fontconv/logger"
	"fontconv/models"
)

// fontToolsScript is run by python3 with the input and output paths as
// arguments.
const fontToolsScript = `import sys
from fontTools.ttLib import TTFont
font = TTFont(sys.argv[1])
font.flavor = "woff2"
font.save(sys.argv[2])
`

// EncodeWithWoff2Compress runs Google's woff2_compress. The tool always
// writes next to its input, so the font is copied into a scratch
// directory first.
func EncodeWithWoff2Compress(ctx context.Context, input string, opts EncodeOptions) ([]byte, error) {
	tmp, err := os.MkdirTemp("", "fontconv-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmp)

	name := filepath.Base(input)
	scratch := filepath.Join(tmp, name)
	if err := copyFile(input, scratch); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, "woff2_compress", scratch)
	if err := run(cmd); err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(tmp, models.Stem(name)+models.WOFF2Ext))
}

// EncodeWithFontTools converts through fontTools, loading the font,
// switching its flavor to woff2 and saving it.
func EncodeWithFontTools(ctx context.Context, input string, opts EncodeOptions) ([]byte, error) {
	tmp, err := os.MkdirTemp("", "fontconv-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmp)

	out := filepath.Join(tmp, "out"+models.WOFF2Ext)
	cmd := exec.CommandContext(ctx, "python3", "-c", fontToolsScript, input, out)
	if err := run(cmd); err != nil {
		return nil, err
	}
	return os.ReadFile(out)
}

// run executes cmd and folds its output into the error on failure.
func run(cmd *exec.Cmd) error {
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	logger.Debugf("running %s", strings.Join(cmd.Args, " "))
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(output.String())
		if msg == "" {
			return fmt.Errorf("%s: %w", filepath.Base(cmd.Path), err)
		}
		// the last line carries the message of a python traceback
		msg = msg[strings.LastIndexByte(msg, '\n')+1:]
		return fmt.Errorf("%s: %w: %s", filepath.Base(cmd.Path), err, msg)
	}
	return nil
}

func copyFile(input, output string) error {
	src, err := os.Open(input)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(output)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
