// Package ingest turns sequence files into the normalized byte text an index is built over.
//
// Each line is cut at the first '\r', '>' or ';'. What follows '>' or ';' is a comment;
// a line starting with '>' also opens a new record named by the rest of the line.
// Remaining text is concatenated without separators.
package ingest

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	ErrEmptySequence = errors.New("ingest: input holds no sequence symbols")
)

const cutSet = "\r>;"

type Options struct {
	// FoldCase lowercases the sequence.
	FoldCase bool
	// Normalize applies Unicode NFC to each line.
	Normalize bool
}

func DefaultOptions() Options {
	return Options{Normalize: true}
}

// Pattern applies the same transforms to a query that were applied to the sequence.
func (o Options) Pattern(p string) string {
	return o.apply(p)
}

func (o Options) apply(s string) string {
	if o.FoldCase {
		s = foldCase(s)
	}
	if o.Normalize {
		s = norm.NFC.String(s)
	}
	return s
}

// foldCase lowercases the valid UTF-8 in s. Invalid bytes are copied through unchanged.
func foldCase(s string) string {
	if utf8.ValidString(s) {
		return strings.ToLower(s)
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			sb.WriteByte(s[0])
		} else {
			sb.WriteString(strings.ToLower(s[:size]))
		}
		s = s[size:]
	}
	return sb.String()
}

type Record struct {
	Name   string
	Offset int
	Length int
}

type Sequence struct {
	Data    []byte
	Records []Record
}

// Offsets returns the start offset of each record.
func (s *Sequence) Offsets() []int {
	offsets := make([]int, len(s.Records))
	for i, r := range s.Records {
		offsets[i] = r.Offset
	}
	return offsets
}

// RecordAt returns the record holding position pos.
func (s *Sequence) RecordAt(pos int) (Record, bool) {
	if pos < 0 || pos >= len(s.Data) || len(s.Records) == 0 {
		return Record{}, false
	}
	i := sort.Search(len(s.Records), func(i int) bool { return s.Records[i].Offset > pos }) - 1
	if i < 0 {
		return Record{}, false
	}
	return s.Records[i], true
}

// Read consumes r line by line. It fails with ErrEmptySequence when nothing but
// comments and line endings remain.
func Read(r io.Reader, opts Options) (*Sequence, error) {
	br := bufio.NewReader(r)
	seq := &Sequence{}
	var data bytes.Buffer

	closeRecord := func() {
		if n := len(seq.Records); n > 0 {
			seq.Records[n-1].Length = data.Len() - seq.Records[n-1].Offset
		}
	}

	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			line = strings.TrimSuffix(line, "\n")
			if strings.HasPrefix(line, ">") {
				closeRecord()
				seq.Records = append(seq.Records, Record{Name: headerName(line[1:]), Offset: data.Len()})
			} else {
				if i := strings.IndexAny(line, cutSet); i >= 0 {
					line = line[:i]
				}
				if len(line) > 0 {
					if len(seq.Records) == 0 {
						seq.Records = append(seq.Records, Record{Offset: 0})
					}
					data.WriteString(opts.apply(line))
				}
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: read: %w", err)
		}
	}
	closeRecord()

	if data.Len() == 0 {
		return nil, ErrEmptySequence
	}
	seq.Data = data.Bytes()
	return seq, nil
}

func headerName(h string) string {
	if i := strings.IndexAny(h, cutSet); i >= 0 {
		h = h[:i]
	}
	return strings.TrimSpace(h)
}
