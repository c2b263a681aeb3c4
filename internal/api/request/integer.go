package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	// ErrMissing is returned for an absent or null value
	ErrMissing = errors.New("value is required")
	// ErrNotInteger is returned for a value that is not a JSON integer
	ErrNotInteger = errors.New("value must be an integer")
	// ErrNotArray is returned when a JSON array was expected
	ErrNotArray = errors.New("value must be an array")
)

// ParseInt reads raw as an integral JSON number. Strings, booleans and
// fractional numbers are rejected; 3.0 and 1e3 are accepted.
func ParseInt(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, ErrMissing
	}

	s := string(raw)
	if n, err := strconv.ParseInt(s, 10, strconv.IntSize); err == nil {
		return int(n), nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, ErrNotInteger
	}
	if f != math.Trunc(f) || f < math.MinInt || f >= math.MaxInt {
		return 0, ErrNotInteger
	}
	return int(f), nil
}

// ParseIntArray reads raw as a JSON array of exactly n integers
func ParseIntArray(raw json.RawMessage, n int) ([]int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, ErrMissing
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, ErrNotArray
	}
	if len(elems) != n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(elems))
	}

	values := make([]int, len(elems))
	for i, elem := range elems {
		v, err := ParseInt(elem)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		values[i] = v
	}
	return values, nil
}
