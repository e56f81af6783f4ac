package subtitle

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"

	"github.com/au2001/onepace-stremio/filesystem"
	"github.com/spf13/afero"
)

// Transcoder converts a subtitle file from one format to another.
type Transcoder interface {
	Transcode(ctx context.Context, input, output string) error
}

var directivePattern = regexp.MustCompile(`\{[^\}]*\}`)

// StripDirectives removes {...} override blocks left over from .ass styling.
func StripDirectives(data []byte) []byte {
	return directivePattern.ReplaceAll(data, nil)
}

// FFmpeg transcodes with the ffmpeg executable, then strips styling directives.
// ffmpeg works on the real filesystem; fs is only used for the cleanup pass.
type FFmpeg struct {
	Path string
	Fs   afero.Fs
}

func (f *FFmpeg) Transcode(ctx context.Context, input, output string) error {
	if err := os.MkdirAll(filepath.Dir(output), os.ModePerm); err != nil {
		return err
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, f.Path, "-y", "-loglevel", "error", "-i", input, output)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg %s: %w: %s", filepath.Base(input), err, bytes.TrimSpace(stderr.Bytes()))
	}

	return Clean(f.Fs, output)
}

// Clean strips styling directives from a converted subtitle file in place.
func Clean(fsys afero.Fs, path string) error {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return err
	}
	return filesystem.WriteAtomic(fsys, path, StripDirectives(data))
}
