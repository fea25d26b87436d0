package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

var (
	mu   sync.Mutex
	mono io.Reader
)

func init() {
	// Seed a PRNG from crypto/rand so ULID entropy is unpredictable.
	// ulid.Monotonic keeps IDs generated within the same millisecond
	// lexicographically increasing.
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	mono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// Generator produces a fresh unique identifier on each call.
type Generator func() string

// New returns a ULID string (time-sortable identifier).
//
// ULIDs sort by generation time, so journal entries keyed by them list in
// creation order in sqlite and in exported files.
func New() string {
	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), mono)
	if err != nil {
		// Only happens if the clock goes backwards past the monotonic window
		// or entropy fails.
		panic(err)
	}
	return id.String()
}

// NewUUID returns a random (v4) UUID string, the format used by journals
// exported from the browser version of the tool.
func NewUUID() string {
	return uuid.NewString()
}

// ForFormat returns the generator for a configured id format.
func ForFormat(format string) (Generator, error) {
	switch format {
	case "", "ulid":
		return New, nil
	case "uuid":
		return NewUUID, nil
	}
	return nil, fmt.Errorf("unknown id format %q", format)
}
