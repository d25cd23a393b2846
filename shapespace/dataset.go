// SPDX-License-Identifier: MIT

package shapespace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// maxLineBytes bounds one dataset row; 2N floats of ~24 bytes fit comfortably.
const maxLineBytes = 4 << 20

// maxPrealloc caps the row capacity taken from an untrusted sample count.
const maxPrealloc = 1024

// ReadDataset parses the text dataset layout:
//
//	<sample_count>
//	<points_per_shape>
//	<2N space-separated floats>   // sample_count lines
//
// Lines after the last declared sample are ignored.
//
// Errors: ErrDatasetFormat for a missing, non-numeric or non-positive header,
// a missing row, a row with a field count other than 2·points_per_shape, or an
// unparsable float; read errors are returned wrapped.
func ReadDataset(r io.Reader) (samples [][]float64, numPoints int, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	count, err := readHeader(sc, "sample count")
	if err != nil {
		return nil, 0, err
	}
	if numPoints, err = readHeader(sc, "points per shape"); err != nil {
		return nil, 0, err
	}

	dim := 2 * numPoints
	samples = make([][]float64, 0, min(count, maxPrealloc))
	for i := 0; i < count; i++ {
		if !sc.Scan() {
			if err = sc.Err(); err != nil {
				return nil, 0, fmt.Errorf("%s: row %d: %w", opRead, i+1, err)
			}
			return nil, 0, spaceErrorf(opRead, ErrDatasetFormat, "expected %d samples, found %d", count, i)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) != dim {
			return nil, 0, spaceErrorf(opRead, ErrDatasetFormat, "row %d has %d values, want %d", i+1, len(fields), dim)
		}
		row := make([]float64, dim)
		for j, f := range fields {
			if row[j], err = strconv.ParseFloat(f, 64); err != nil {
				return nil, 0, spaceErrorf(opRead, ErrDatasetFormat, "row %d value %d %q", i+1, j+1, f)
			}
		}
		samples = append(samples, row)
	}

	return samples, numPoints, nil
}

// readHeader reads one positive integer header line.
func readHeader(sc *bufio.Scanner, what string) (int, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return 0, fmt.Errorf("%s: %s: %w", opRead, what, err)
		}
		return 0, spaceErrorf(opRead, ErrDatasetFormat, "missing %s", what)
	}
	text := strings.TrimSpace(sc.Text())
	n, err := strconv.Atoi(text)
	if err != nil || n <= 0 {
		return 0, spaceErrorf(opRead, ErrDatasetFormat, "%s %q", what, text)
	}

	return n, nil
}

// WriteDataset writes samples in the ReadDataset layout using the shortest
// representation that parses back to the same float64.
// Errors: ErrDimension for a row whose length is not 2·numPoints; write errors wrapped.
func WriteDataset(w io.Writer, samples [][]float64, numPoints int) error {
	dim := 2 * numPoints
	for i, row := range samples {
		if len(row) != dim {
			return spaceErrorf(opWrite, ErrDimension, "row %d has %d values, want %d", i+1, len(row), dim)
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n%d\n", len(samples), numPoints)
	buf := make([]byte, 0, 32)
	for _, row := range samples {
		for j, v := range row {
			if j > 0 {
				bw.WriteByte(' ')
			}
			buf = strconv.AppendFloat(buf[:0], v, 'g', -1, 64)
			bw.Write(buf)
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%s: %w", opWrite, err)
	}

	return nil
}

// LoadDataset reads and concatenates the datasets at paths. All files must
// declare the same points per shape.
// Errors: ErrDatasetFormat (content or disagreeing point counts), *fs.PathError
// for unreadable files (match fs.ErrNotExist / fs.ErrPermission).
func LoadDataset(paths ...string) (samples [][]float64, numPoints int, err error) {
	if len(paths) == 0 {
		return nil, 0, spaceErrorf(opRead, ErrDatasetFormat, "no dataset paths")
	}
	for _, p := range paths {
		rows, n, err := readDatasetFile(p)
		if err != nil {
			return nil, 0, err
		}
		if numPoints != 0 && n != numPoints {
			return nil, 0, spaceErrorf(opRead, ErrDatasetFormat, "%s has %d points per shape, want %d", p, n, numPoints)
		}
		numPoints = n
		samples = append(samples, rows...)
	}

	return samples, numPoints, nil
}

func readDatasetFile(path string) ([][]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", opRead, err)
	}
	defer f.Close()

	rows, n, err := ReadDataset(f)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}

	return rows, n, nil
}

// Load reads the dataset at path and fits a Space with k components.
// Use LoadDataset and Fit to combine several files.
func Load(path string, k int, opts ...Option) (*Space, error) {
	samples, numPoints, err := LoadDataset(path)
	if err != nil {
		return nil, err
	}

	return Fit(samples, numPoints, k, opts...)
}

// Persist rewrites path with the current sample matrix.
// The file is truncated before writing; a failed write leaves it incomplete.
func (s *Space) Persist(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%s: %w", opWrite, err)
	}
	if err = WriteDataset(f, s.samples, s.numPoints); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("%s: %w", opWrite, err)
	}

	return nil
}
