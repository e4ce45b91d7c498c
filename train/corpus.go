package train

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hangul-nlp/yongeon"
	"github.com/hangul-nlp/yongeon/hangle"
)

const segmentSeparator = " + "

// Segment is one "morph/Tag" item of an annotated word-form.
type Segment struct {
	Morph string
	Tag   string
}

// Row is a line of the word-form/morpheme table: a word-form, its
// morphological annotation and its corpus frequency.
type Row struct {
	Eojeol   string
	Segments []Segment
	Count    int
}

// Predicate returns the stem and the ending of a row annotated as exactly
// one morph followed by another, both with a known tag.
func (row Row) Predicate() (left, right yongeon.Morph, ok bool) {
	if len(row.Segments) != 2 {
		return left, right, false
	}
	lt, err := yongeon.ParseTag(row.Segments[0].Tag)
	if err != nil {
		return left, right, false
	}
	rt, err := yongeon.ParseTag(row.Segments[1].Tag)
	if err != nil {
		return left, right, false
	}
	left = yongeon.Morph{Form: row.Segments[0].Morph, Tag: lt}
	right = yongeon.Morph{Form: row.Segments[1].Morph, Tag: rt}
	return left, right, true
}

// ParseRow parses a "eojeol<TAB>morph/Tag + morph/Tag<TAB>count" line.
// A morph may itself contain a slash; the tag follows the last one.
func ParseRow(line string) (Row, error) {
	cols := strings.Split(strings.TrimSpace(line), "\t")
	if len(cols) != 3 {
		return Row{}, fmt.Errorf("expected 3 tab-separated columns, got %d", len(cols))
	}
	count, err := strconv.Atoi(strings.TrimSpace(cols[2]))
	if err != nil {
		return Row{}, fmt.Errorf("invalid count: %w", err)
	}
	row := Row{Eojeol: yongeon.NormalizeWord(cols[0]), Count: count}
	for _, item := range strings.Split(cols[1], segmentSeparator) {
		i := strings.LastIndex(item, "/")
		if i <= 0 || i == len(item)-1 {
			return Row{}, fmt.Errorf("invalid segment %q", item)
		}
		row.Segments = append(row.Segments, Segment{
			Morph: yongeon.NormalizeWord(item[:i]),
			Tag:   strings.TrimSpace(item[i+1:]),
		})
	}
	return row, nil
}

// RightForm reports whether no morph of the row is a stray vowel
// jamo followed by a consonant jamo, e.g. "ㅏㅆ" split off "갔".
func RightForm(row Row) bool {
	for _, seg := range row.Segments {
		m := []rune(seg.Morph)
		if len(m) > 1 && hangle.IsMoum(m[0]) && hangle.IsJaum(m[1]) {
			return false
		}
	}
	return true
}

// ReadOptions control ReadCorpus.
type ReadOptions struct {
	// SkipHeader drops the first line of the table.
	SkipHeader bool

	// Dedupe keeps only the first row of each word-form.
	Dedupe bool
}

// ReadCorpus reads a word-form/morpheme table. Rows failing RightForm
// are dropped. Any malformed line fails the whole read.
func ReadCorpus(r io.Reader, opts ReadOptions) ([]Row, error) {
	var rows []Row
	seen := make(map[string]bool)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		if lineNum == 1 && opts.SkipHeader {
			continue
		}
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		row, err := ParseRow(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if !RightForm(row) {
			continue
		}
		if opts.Dedupe {
			if seen[row.Eojeol] {
				continue
			}
			seen[row.Eojeol] = true
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
