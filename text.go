package alphamap

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
)

// rangeLinePattern matches a textual range definition: bracketed hex
// begin and end with whitespace tolerated around the brackets and comma.
// Anything after the closing bracket is ignored.
var rangeLinePattern = regexp.MustCompile(`^\s*\[\s*([0-9A-Fa-f]+)\s*,\s*([0-9A-Fa-f]+)\s*\]`)

// ReadText parses a line-oriented alphabet definition. Each meaningful
// line has the form "[<hex-begin>,<hex-end>]"; lines that do not match
// (blank lines, comments, garbage, lines longer than the configured
// bound) are skipped silently. Matching lines whose begin exceeds end,
// or whose values overflow 32 bits, are rejected with a warn-level
// diagnostic and skipped. Reading stops only on a reader error, so a
// mostly malformed stream still yields every valid range it contains.
func ReadText(r io.Reader, optFns ...Option) (*Map, error) {
	o := applyOptions(optFns)
	m := New()

	br := bufio.NewReaderSize(r, o.maxLineLen)
	lineNo := 0
	for {
		line, isPrefix, err := br.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read alphabet definition: %w", err)
		}
		lineNo++
		if isPrefix {
			// Line exceeds the buffer. Drain the rest and skip it.
			for isPrefix {
				if _, isPrefix, err = br.ReadLine(); err != nil {
					if err == io.EOF {
						return m, nil
					}
					return nil, fmt.Errorf("failed to read alphabet definition: %w", err)
				}
			}
			continue
		}

		sub := rangeLinePattern.FindSubmatch(line)
		if sub == nil {
			continue
		}
		begin, errB := strconv.ParseUint(string(sub[1]), 16, 32)
		end, errE := strconv.ParseUint(string(sub[2]), 16, 32)
		if errB != nil || errE != nil {
			o.logger.Warn("rejected range definition",
				"line", lineNo,
				"reason", "value overflows 32 bits",
			)
			continue
		}
		if err := m.AddRange(Char(begin), Char(end)); err != nil {
			o.logger.LogRejectedLine(lineNo, Char(begin), Char(end))
		}
	}
	return m, nil
}

// WriteText emits the map's ranges in the textual definition format, one
// "[begin,end]" line per range in append order. The output parses back
// via ReadText into an identical map.
func (m *Map) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, r := range m.ranges {
		if _, err := fmt.Fprintf(bw, "[%X,%X]\n", uint32(r.Begin), uint32(r.End)); err != nil {
			return fmt.Errorf("failed to write range: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write range: %w", err)
	}
	return nil
}
