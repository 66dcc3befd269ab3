// internal/daily/daily.go
//
// Board of the day. The generator is seeded from HMAC-SHA256(salt, YYYY-MM-DD),
// so every caller sees the same board for a UTC date and the board cannot be
// predicted without the salt.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"math/rand/v2"
	"time"

	"github.com/robalobadob/boggle/internal/board"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// ParseDateKey parses a YYYY-MM-DD key.
func ParseDateKey(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// Seed derives the two PCG seed words for a date.
func Seed(date time.Time, salt string) (uint64, uint64) {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8]), binary.BigEndian.Uint64(sum[8:16])
}

// Board returns the size x size board for date.
func Board(date time.Time, salt string, size int, p board.Policy) (board.Board, error) {
	s1, s2 := Seed(date, salt)
	return board.NewGenerator(rand.NewPCG(s1, s2)).Generate(size, size, p)
}
