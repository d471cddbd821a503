package dump

import (
	"bufio"
	"errors"
	"io"
	"os"

	"accneat/internal/model"
)

const maxLineBytes = 1 << 20

// Decoder reads genome blocks from a dump stream one at a time.
type Decoder struct {
	scanner *bufio.Scanner
	path    string
	line    int
	err     error
}

// NewDecoder reads from r. path only labels errors and may be empty.
func NewDecoder(r io.Reader, path string) *Decoder {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &Decoder{scanner: scanner, path: path}
}

// Next returns the next genome. A block cut short by the end of input is
// returned with Complete() == false; io.EOF means nothing was left to read.
// The first error is sticky.
func (d *Decoder) Next() (model.ParsedGenome, error) {
	if d.err != nil {
		return model.ParsedGenome{}, d.err
	}

	b := NewBuilder()
	for d.scanner.Scan() {
		d.line++
		line, err := Classify(d.scanner.Text())
		if err != nil {
			return model.ParsedGenome{}, d.fail(err)
		}
		done, err := b.Apply(line)
		if err != nil {
			return model.ParsedGenome{}, d.fail(err)
		}
		if done {
			return b.Finish(true), nil
		}
	}
	if err := d.scanner.Err(); err != nil {
		return model.ParsedGenome{}, d.fail(err)
	}
	d.err = io.EOF
	if b.Empty() {
		return model.ParsedGenome{}, io.EOF
	}
	return b.Finish(false), nil
}

func (d *Decoder) fail(err error) error {
	d.err = &ParseError{Path: d.path, Line: d.line, Err: err}
	return d.err
}

// Parse returns the first genome in r.
func Parse(r io.Reader, path string) (model.ParsedGenome, error) {
	g, err := NewDecoder(r, path).Next()
	if errors.Is(err, io.EOF) {
		return model.ParsedGenome{}, &ParseError{Path: path, Err: ErrNoGenome}
	}
	return g, err
}

// ParseFile opens path and returns the first genome it holds.
func ParseFile(path string) (model.ParsedGenome, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.ParsedGenome{}, &ParseError{Path: path, Err: err}
	}
	defer f.Close()
	return Parse(f, path)
}

// ParseAllFile returns every genome block in path, stopping at the first error.
func ParseAllFile(path string) ([]model.ParsedGenome, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	dec := NewDecoder(f, path)
	var out []model.ParsedGenome
	for {
		g, err := dec.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return out, err
		}
		out = append(out, g)
	}
	if len(out) == 0 {
		return nil, &ParseError{Path: path, Err: ErrNoGenome}
	}
	return out, nil
}

// Parser turns a dump file path into a genome.
type Parser interface {
	Parse(path string) (model.ParsedGenome, error)
}

// FileParser is the default Parser backed by ParseFile.
type FileParser struct{}

func (FileParser) Parse(path string) (model.ParsedGenome, error) {
	return ParseFile(path)
}
