package tagger

import (
	"bufio"
	"bytes"
	"io"
)

// MaxLineBytes is the longest line a line scanner accepts. The buffer only
// grows this far for lines that need it.
const MaxLineBytes = 64 << 20

// ScanLines is a bufio.SplitFunc that ends a line at "\n", "\r\n" or a lone
// "\r". The terminator is not part of the token and a final line without
// one is still returned.
func ScanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// A trailing "\r" may be the first half of "\r\n".
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// NewLineScanner returns a scanner over r using ScanLines and MaxLineBytes.
func NewLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)
	scanner.Split(ScanLines)
	return scanner
}
