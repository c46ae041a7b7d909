package app

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DefaultFileMode is used when saving a file that does not exist yet.
const DefaultFileMode fs.FileMode = 0o644

// ReadLines reads path as newline-separated lines with trailing "\n" and
// "\r" bytes removed. A missing file yields no lines and no error.
func ReadLines(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fileError("open", path, err)
	}
	defer f.Close()

	var lines [][]byte
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadBytes('\n')
		if len(line) > 0 {
			lines = append(lines, bytes.TrimRight(line, "\r\n"))
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, fileError("read", path, err)
		}
	}
}

// EncodeLines joins lines with "\n", including a trailing newline.
func EncodeLines(lines [][]byte) []byte {
	var buf bytes.Buffer
	for _, l := range lines {
		buf.Write(l)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// WriteLines saves lines to path and returns the number of bytes written.
// The data goes to a temporary file in the same directory which is then
// renamed over path, so path holds either the old or the new content.
// An existing file's permissions are kept; symlinks are followed.
func WriteLines(path string, lines [][]byte) (int, error) {
	if path == "" {
		return 0, ErrNoFilename
	}
	data := EncodeLines(lines)

	target := path
	mode := DefaultFileMode
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	}
	if info, err := os.Stat(target); err == nil {
		mode = info.Mode().Perm()
	}

	dir, base := filepath.Split(target)
	tmp := filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return 0, fileError("save", path, err)
	}
	cleanup := func(err error) (int, error) {
		_ = f.Close()
		_ = os.Remove(tmp)
		return 0, fileError("save", path, err)
	}

	if _, err := f.Write(data); err != nil {
		return cleanup(err)
	}
	if err := f.Sync(); err != nil {
		return cleanup(err)
	}
	if err := f.Chmod(mode); err != nil {
		return cleanup(err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return 0, fileError("save", path, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return 0, fileError("save", path, err)
	}
	return len(data), nil
}
