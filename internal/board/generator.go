// internal/board/generator.go
//
// Board generation under two policies:
//   - PolicyRandom: each cell drawn independently from an English
//     letter-frequency pool, then topped up to at least MinVowels vowels.
//   - PolicyDice: the 16 classic dice shuffled onto a 4x4 board and rolled.
//     Any other cell count silently falls back to PolicyRandom.
//
// A Generator owns a math/rand/v2 source. Pass a seeded source for
// reproducible boards (tests, the daily board); NewGenerator(nil) seeds one
// from crypto/rand.

package board

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
)

// Policy selects the generation strategy.
type Policy string

const (
	PolicyRandom Policy = "random"
	PolicyDice   Policy = "dice"
)

// ErrUnknownPolicy is returned by ParsePolicy for names it does not know.
var ErrUnknownPolicy = errors.New("board: unknown policy")

// ParsePolicy maps a user-supplied name to a Policy. An empty name selects
// PolicyDice.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyDice:
		return PolicyDice, nil
	case PolicyRandom:
		return PolicyRandom, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// MinVowels is the floor enforced by PolicyRandom.
const MinVowels = 5

var vowels = []string{"a", "e", "i", "o", "u"}

// letterFrequency approximates English letter frequency in percent.
var letterFrequency = [26]float64{
	8.2, 1.5, 2.8, 4.3, 12.7, 2.2, 2.0, 6.1, 7.0, 0.2, 0.8, 4.0, 2.4,
	6.7, 7.5, 1.9, 0.1, 6.0, 6.3, 9.1, 2.8, 1.0, 2.4, 0.2, 2.0, 0.1,
}

// letterPool repeats each letter round(frequency*10) times.
var letterPool = func() []string {
	var pool []string
	for i, f := range letterFrequency {
		n := int(math.Round(f * 10))
		for k := 0; k < n; k++ {
			pool = append(pool, string(rune('a'+i)))
		}
	}
	return pool
}()

// Dice are the 16 reference dice. The "qu" face is stored as "q".
var Dice = [16][6]string{
	{"a", "a", "e", "e", "g", "n"},
	{"a", "b", "b", "j", "o", "o"},
	{"a", "c", "h", "o", "p", "s"},
	{"a", "f", "f", "k", "p", "s"},
	{"a", "o", "o", "t", "t", "w"},
	{"c", "i", "m", "o", "t", "u"},
	{"d", "e", "i", "l", "r", "x"},
	{"d", "e", "l", "r", "v", "y"},
	{"d", "i", "s", "t", "t", "y"},
	{"e", "e", "g", "h", "n", "w"},
	{"e", "e", "i", "n", "s", "u"},
	{"e", "h", "r", "t", "v", "w"},
	{"e", "i", "o", "s", "s", "t"},
	{"e", "l", "r", "t", "t", "y"},
	{"h", "i", "m", "n", "u", "q"},
	{"h", "l", "n", "n", "r", "z"},
}

// Generator produces boards. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a Generator drawing from src, or from a PCG source
// seeded by crypto/rand when src is nil.
func NewGenerator(src rand.Source) *Generator {
	if src == nil {
		src = rand.NewPCG(cryptoSeed(), cryptoSeed())
	}
	return &Generator{rng: rand.New(src)}
}

func cryptoSeed() uint64 {
	var b [8]byte
	_, _ = crand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

// Generate returns a fresh rows x cols board under policy p.
func (g *Generator) Generate(rows, cols int, p Policy) (Board, error) {
	if rows <= 0 || cols <= 0 || rows > MaxSide || cols > MaxSide {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if p == PolicyDice && rows*cols == len(Dice) {
		b, _ := g.rollDice(rows, cols)
		return b, nil
	}
	return g.random(rows, cols), nil
}

// random implements PolicyRandom. Caller holds g.mu.
func (g *Generator) random(rows, cols int) Board {
	b := make(Board, rows)
	count := 0
	for r := range b {
		b[r] = make([]string, cols)
		for c := range b[r] {
			l := letterPool[g.rng.IntN(len(letterPool))]
			if isVowel(l) {
				count++
			}
			b[r][c] = l
		}
	}
	if count >= MinVowels {
		return b
	}

	var consonants []Coord
	for r, row := range b {
		for c, cell := range row {
			if !isVowel(cell) {
				consonants = append(consonants, Coord{Row: r, Col: c})
			}
		}
	}
	g.rng.Shuffle(len(consonants), func(i, j int) {
		consonants[i], consonants[j] = consonants[j], consonants[i]
	})
	for i := 0; i < MinVowels-count && i < len(consonants); i++ {
		cc := consonants[i]
		b[cc.Row][cc.Col] = vowels[g.rng.IntN(len(vowels))]
	}
	return b
}

// rollDice implements PolicyDice for rows*cols == 16. It also returns which
// die landed on each cell, in row-major order. Caller holds g.mu.
func (g *Generator) rollDice(rows, cols int) (Board, []int) {
	order := g.rng.Perm(len(Dice))
	b := make(Board, rows)
	for r := range b {
		b[r] = make([]string, cols)
		for c := range b[r] {
			die := Dice[order[r*cols+c]]
			b[r][c] = die[g.rng.IntN(len(die))]
		}
	}
	return b, order
}

func isVowel(s string) bool {
	switch s {
	case "a", "e", "i", "o", "u":
		return true
	}
	return false
}

// VowelCount returns how many cells hold a, e, i, o or u.
func (b Board) VowelCount() int {
	n := 0
	for _, row := range b {
		for _, cell := range row {
			if isVowel(cell) {
				n++
			}
		}
	}
	return n
}
