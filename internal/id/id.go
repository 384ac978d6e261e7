// Package id generates run identifiers. Reports, exported file names and
// alert messages carry the same id, so ids sort by the time the run started.
package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	// mu guards mono; the monotonic reader is not safe for concurrent use
	mu   sync.Mutex
	mono io.Reader
)

func init() {
	// Seed from crypto/rand so two analyzer processes started in the same
	// millisecond do not produce the same run id.
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Monotonic entropy keeps ids from one process strictly increasing
	// within a millisecond, so a scan over several symbols exports in order.
	mono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// New returns a time-sortable run identifier. IDs generated within the same
// millisecond stay lexicographically increasing.
func New() string {
	mu.Lock()
	defer mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now().UTC()), mono).String()
}
