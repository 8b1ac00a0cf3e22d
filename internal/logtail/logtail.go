package logtail

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNoBudget is returned by Extract when the byte budget is zero or negative.
var ErrNoBudget = errors.New("no byte budget")

// Tail is the trailing slice of a file read by Extract.
type Tail struct {
	// Data aliases the buffer passed to Extract (or its replacement).
	Data []byte
	// LastLine is the offset just past the final '\n' in Data, 0 if none.
	LastLine int
}

// Line returns the last complete line of the tail without line terminators.
func (t Tail) Line() string {
	start, end := LastLine(t.Data)
	return string(t.Data[start:end])
}

// Extract reads the last budget bytes of r into buf. buf is grown only when
// its capacity is smaller than the number of bytes to read; callers keep the
// returned Data as the buffer for the next call.
func Extract(r io.ReadSeeker, budget int, buf []byte) (Tail, error) {
	if budget <= 0 {
		return Tail{}, ErrNoBudget
	}
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return Tail{}, fmt.Errorf("seek end: %w", err)
	}
	start := size - int64(budget)
	if start < 0 {
		start = 0
	}
	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return Tail{}, fmt.Errorf("seek tail: %w", err)
	}

	want := int(size - start)
	if cap(buf) < want {
		buf = make([]byte, 0, budget)
	}
	n, err := io.ReadFull(r, buf[:want])
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Tail{}, fmt.Errorf("read tail: %w", err)
	}
	data := buf[:n]
	return Tail{Data: data, LastLine: LineStart(data)}, nil
}

// LineStart returns the offset just past the final '\n' in data.
func LineStart(data []byte) int {
	return bytes.LastIndexByte(data, '\n') + 1
}

// LastLine returns the bounds of the last complete line in data, skipping
// trailing '\n' and '\r' bytes. start == end when there is no such line.
func LastLine(data []byte) (start, end int) {
	end = len(data)
	for end > 0 && (data[end-1] == '\n' || data[end-1] == '\r') {
		end--
	}
	start = end
	for start > 0 && data[start-1] != '\n' && data[start-1] != '\r' {
		start--
	}
	return start, end
}

// Read returns at most maxLines from the end of the file at path.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
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
