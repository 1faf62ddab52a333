// Package docnumber formats and parses human-readable document numbers such as JE-0001 or POS-01J....
package docnumber

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu   sync.Mutex
	mono io.Reader
)

func init() {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	// Monotonic keeps numbers issued within the same millisecond ordered.
	mono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// Format renders PREFIX-<value> with the value zero-padded to width digits.
// Values wider than width are rendered in full.
func Format(prefix string, value int64, width int) string {
	return fmt.Sprintf("%s-%0*d", prefix, width, value)
}

// Unique renders PREFIX-<ULID>. Safe for concurrent use.
func Unique(prefix string) (string, error) {
	mu.Lock()
	defer mu.Unlock()
	return UniqueWith(prefix, mono)
}

// UniqueWith renders PREFIX-<ULID> drawing entropy from r. It fails when r fails or,
// for a monotonic reader, when the millisecond's entropy is exhausted.
func UniqueWith(prefix string, r io.Reader) (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), r)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s number: %w", prefix, err)
	}
	return prefix + "-" + id.String(), nil
}

// ParseSuffix extracts the numeric suffix of a sequential number that carries the given prefix.
// ok is false when the number belongs to another series or the suffix is not numeric.
func ParseSuffix(prefix, number string) (int64, bool) {
	rest, found := strings.CutPrefix(number, prefix+"-")
	if !found || rest == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// NextAfter returns the value that follows the highest numeric suffix among existing numbers.
// Numbers outside the series are ignored. first is returned when none match.
func NextAfter(prefix string, existing []string, first int64) int64 {
	highest := first - 1
	for _, n := range existing {
		if v, ok := ParseSuffix(prefix, n); ok && v > highest {
			highest = v
		}
	}
	return highest + 1
}
