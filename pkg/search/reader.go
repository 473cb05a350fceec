package search

import (
	"bufio"
	"bytes"
	"unicode/utf8"
)

// binaryCheckSize is how much of a file is searched for a NUL byte.
const binaryCheckSize = 8192

// isBinary reports whether content should be treated as a binary file:
// a NUL byte near the start, or bytes that are not valid UTF-8.
func isBinary(content []byte) bool {
	checkSize := len(content)
	if checkSize > binaryCheckSize {
		checkSize = binaryCheckSize
	}
	if bytes.IndexByte(content[:checkSize], 0) != -1 {
		return true
	}
	return !utf8.Valid(content)
}

// scanLines is a bufio.SplitFunc that accepts "\n", "\r\n" and a lone
// "\r" as line terminators and strips them from the token.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
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
		// A trailing '\r' may be the first half of "\r\n".
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// eachLine calls fn for every line of content until fn returns false or
// an error.
func eachLine(content []byte, fn func(line string) (bool, error)) error {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), len(content)+1)
	scanner.Split(scanLines)
	for scanner.Scan() {
		more, err := fn(scanner.Text())
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
	return scanner.Err()
}
