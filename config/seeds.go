// SPDX-License-Identifier: MIT

package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// ErrSeedFormat reports a malformed parameter-seed file.
var ErrSeedFormat = errors.New("config: malformed seed file")

// ReadSeeds parses a parameter-seed file:
//
//	# optional comment lines
//	[a]
//	0, 0, 1.5, 0
//	[b]
//	0 -2.25 0 0
//
// Values are separated by commas, whitespace or both. Blank lines are
// skipped; a later block for the same glyph replaces the earlier one.
func ReadSeeds(r io.Reader) (map[string][]float64, error) {
	seeds := make(map[string][]float64)
	sc := bufio.NewScanner(r)
	var glyph string
	pending := false
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		switch {
		case text == "" || strings.HasPrefix(text, "#"):
			continue
		case strings.HasPrefix(text, "["):
			if pending {
				return nil, fmt.Errorf("line %d: glyph %q has no values: %w", line, glyph, ErrSeedFormat)
			}
			if !strings.HasSuffix(text, "]") || len(text) < 3 {
				return nil, fmt.Errorf("line %d: header %q: %w", line, text, ErrSeedFormat)
			}
			glyph = text[1 : len(text)-1]
			pending = true
		default:
			if !pending {
				return nil, fmt.Errorf("line %d: values without a glyph header: %w", line, ErrSeedFormat)
			}
			fields := strings.FieldsFunc(text, func(r rune) bool {
				return r == ',' || r == ' ' || r == '\t'
			})
			values := make([]float64, len(fields))
			for i, f := range fields {
				v, err := strconv.ParseFloat(f, 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: value %q: %w", line, f, ErrSeedFormat)
				}
				values[i] = v
			}
			seeds[glyph] = values
			pending = false
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read seeds: %w", err)
	}
	if pending {
		return nil, fmt.Errorf("glyph %q has no values: %w", glyph, ErrSeedFormat)
	}

	return seeds, nil
}

// LoadSeeds reads the seed file at path.
func LoadSeeds(path string) (map[string][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seeds: %w", err)
	}
	defer f.Close()

	seeds, err := ReadSeeds(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return seeds, nil
}

// WriteSeeds writes seeds in ReadSeeds format, glyphs in lexical order.
func WriteSeeds(w io.Writer, seeds map[string][]float64) error {
	glyphs := make([]string, 0, len(seeds))
	for g := range seeds {
		glyphs = append(glyphs, g)
	}
	sort.Strings(glyphs)

	bw := bufio.NewWriter(w)
	for _, g := range glyphs {
		fmt.Fprintf(bw, "[%s]\n", g)
		for i, v := range seeds[g] {
			if i > 0 {
				bw.WriteString(", ")
			}
			bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}
