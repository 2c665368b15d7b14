package alignment

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrBadLink reports a malformed "i-j" or "i?j" token.
var ErrBadLink = errors.New("malformed alignment link")

// Format renders aligned links as space-separated "i-j" tokens.
func Format(links []Link) string {
	var b strings.Builder
	for _, l := range links {
		if !l.Aligned() {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(l.I))
		b.WriteByte('-')
		b.WriteString(strconv.Itoa(l.J))
	}
	return b.String()
}

// Write writes one formatted line per sentence pair.
func Write(w io.Writer, alignments [][]Link) error {
	bw := bufio.NewWriter(w)
	for _, links := range alignments {
		if _, err := bw.WriteString(Format(links)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Gold is a reference alignment. Possible includes every sure link.
type Gold struct {
	Sure     []Link
	Possible []Link
}

// ParseLine parses a line of "i-j" (sure) and "i?j" (possible) tokens.
func ParseLine(line string) (Gold, error) {
	var g Gold
	for _, tok := range strings.Fields(line) {
		sep := strings.IndexAny(tok, "-?")
		if sep <= 0 || sep == len(tok)-1 {
			return Gold{}, fmt.Errorf("%w: %q", ErrBadLink, tok)
		}
		i, err := strconv.Atoi(tok[:sep])
		if err != nil {
			return Gold{}, fmt.Errorf("%w: %q", ErrBadLink, tok)
		}
		j, err := strconv.Atoi(tok[sep+1:])
		if err != nil {
			return Gold{}, fmt.Errorf("%w: %q", ErrBadLink, tok)
		}
		l := Link{I: i, J: j}
		if tok[sep] == '-' {
			g.Sure = append(g.Sure, l)
		}
		g.Possible = append(g.Possible, l)
	}
	return g, nil
}

// Read parses one alignment per line.
func Read(r io.Reader) ([]Gold, error) {
	var out []Gold
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		g, err := ParseLine(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		out = append(out, g)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
