package logtail

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const maxLineBytes = 1024 * 1024

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := range count {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Follower returns the lines appended to a file since the previous call.
// A trailing line without a newline is held back until it is completed. If
// the file shrinks (rotation or truncation) reading restarts at the top.
type Follower struct {
	path    string
	offset  int64
	partial []byte
}

// Follow returns a Follower positioned at the start of path.
func Follow(path string) *Follower {
	return &Follower{path: path}
}

// SeekEnd skips everything currently in the file so the next call only
// returns lines written afterwards.
func (f *Follower) SeekEnd() error {
	info, err := os.Stat(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			f.offset, f.partial = 0, nil
			return nil
		}
		return fmt.Errorf("stat log: %w", err)
	}
	f.offset, f.partial = info.Size(), nil
	return nil
}

// Path returns the followed file.
func (f *Follower) Path() string { return f.path }

// Next reads complete lines appended since the last call.
func (f *Follower) Next() ([]string, error) {
	file, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			f.offset, f.partial = 0, nil
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat log: %w", err)
	}
	if info.Size() < f.offset {
		f.offset, f.partial = 0, nil
	}
	if info.Size() == f.offset {
		return nil, nil
	}
	if _, err := file.Seek(f.offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek log: %w", err)
	}

	chunk, err := io.ReadAll(io.LimitReader(file, info.Size()-f.offset))
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	f.offset += int64(len(chunk))

	data := append(f.partial, chunk...)
	end := bytes.LastIndexByte(data, '\n')
	if end < 0 {
		f.partial = data
		if len(f.partial) > maxLineBytes {
			f.partial = nil
		}
		return nil, nil
	}
	f.partial = append([]byte(nil), data[end+1:]...)
	return strings.Split(strings.TrimRight(string(data[:end]), "\r"), "\n"), nil
}
