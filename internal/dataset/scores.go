// Package dataset loads numeric samples from text and CSV sources.
package dataset

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/spboyer/bootci/internal/statistics"
)

// LoadScores reads one number per line from path. Blank lines are skipped;
// any other line that is not a finite number is an *statistics.InputError
// naming the line. A file without any numbers is rejected with
// statistics.ErrEmptySample.
func LoadScores(path string) ([]float64, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, &statistics.InputError{Path: path, Err: err}
	}
	defer rc.Close() //nolint:errcheck

	return ReadScores(rc, path)
}

// ReadScores parses newline-delimited numbers from r. name is used in error
// messages only.
func ReadScores(r io.Reader, name string) ([]float64, error) {
	var scores []float64

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		v, err := parseScore(text)
		if err != nil {
			return nil, &statistics.InputError{Path: name, Line: line, Err: err}
		}
		scores = append(scores, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, &statistics.InputError{Path: name, Err: err}
	}

	if len(scores) == 0 {
		return nil, &statistics.InputError{Path: name, Err: statistics.ErrEmptySample}
	}
	return scores, nil
}

func parseScore(text string) (float64, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", text)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", text)
	}
	return v, nil
}
