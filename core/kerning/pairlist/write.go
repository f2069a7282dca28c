package pairlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/kerntool/core"
)

// WriteTo writes l in pair list format. Word-mode entries are written as
// explicit glyph name lists, so reading them back does not depend on a
// character map.
func (l *List) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	write := func(format string, v ...interface{}) error {
		k, err := fmt.Fprintf(bw, format, v...)
		n += int64(k)
		return err
	}
	marker := PairMarker
	if l.Mode == WordMode {
		marker = WordMarker
	}
	if err := write("%s %s\n", marker, l.Title); err != nil {
		return n, err
	}
	for _, e := range l.Entries {
		var err error
		switch {
		case l.Mode == PairMode:
			err = write("%s %s\n", e.Pair.Side1, e.Pair.Side2)
		case e.Context != nil:
			err = write("%s %s\n", slashed(e.Context.Left), slashed(e.Context.Right))
		default:
			err = write("/%s /%s\n", e.Pair.Side1, e.Pair.Side2)
		}
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// WriteFile writes l to a file.
func (l *List) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot create pair list %s", path)
	}
	if _, err = l.WriteTo(file); err != nil {
		file.Close()
		return core.WrapError(err, core.EINVALID, "cannot write pair list %s", path)
	}
	if err = file.Close(); err != nil {
		return core.WrapError(err, core.EINVALID, "cannot write pair list %s", path)
	}
	return nil
}

func slashed(glyphs []string) string {
	return "/" + strings.Join(glyphs, "/")
}
