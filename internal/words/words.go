// internal/words/words.go
//
// Lexicon: the word dictionary the solver queries.
//
// A Lexicon is an explicit handle around a trie plus a small state machine:
//
//	Empty → Loading → Ready
//	             └──→ Failed → Loading (on the caller's next Load)
//
// Load builds the trie from a Source at most once at a time. Concurrent Load
// calls while a build is in flight wait for it and observe the same outcome;
// calls after Ready return immediately. A Failed lexicon can be loaded again,
// but the loader itself never retries.
//
// Queries (Contains, HasPrefix, IsValidWord) are total: before the build
// completes they behave like an empty dictionary and report false.
//
// Normalization (applied to every source):
//   • trim whitespace, lowercase, drop empty lines
//   • keep words of MinWordLength..MaxWordLength characters

package words

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/boggle/internal/trie"
)

const (
	MinWordLength = 3
	MaxWordLength = 16

	// ApproxSize is the display figure for the bundled ENABLE-style list.
	ApproxSize = 170000
)

var (
	// ErrSourceUnavailable wraps every failure to obtain word data from a Source.
	ErrSourceUnavailable = errors.New("words: source unavailable")
	// ErrNotReady is returned by callers that require a loaded lexicon.
	ErrNotReady = errors.New("words: lexicon not ready")
)

// State is the loader state.
type State int32

const (
	StateEmpty State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Lexicon is a lazily built, read-only word dictionary.
type Lexicon struct {
	src Source

	mu    sync.Mutex
	state State
	cur   *attempt // latest build; in flight while state is StateLoading

	dict atomic.Pointer[trie.Trie]
}

// attempt is one try to fill the dictionary. err is written before done
// is closed, so a waiter reads the outcome of the build it waited on.
type attempt struct {
	done    chan struct{}
	err     error
	waiters int // guarded by Lexicon.mu
}

// New returns an empty Lexicon that will build from src on Load.
func New(src Source) *Lexicon {
	return &Lexicon{src: src}
}

// FromWords returns a Ready Lexicon built from an in-memory list.
func FromWords(list []string) *Lexicon {
	l := &Lexicon{state: StateReady}
	l.dict.Store(trie.FromWords(Normalize(list)))
	return l
}

// Load builds the dictionary if it is not built yet and waits for the result.
// The returned error wraps ErrSourceUnavailable when the source failed.
func (l *Lexicon) Load(ctx context.Context) error {
	l.mu.Lock()
	switch l.state {
	case StateReady:
		l.mu.Unlock()
		return nil
	case StateLoading:
		b := l.cur
		b.waiters++
		l.mu.Unlock()
		select {
		case <-b.done:
			return b.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	b := &attempt{done: make(chan struct{})}
	l.state = StateLoading
	l.cur = b
	l.mu.Unlock()

	start := time.Now()
	dict, err := l.build(ctx)

	l.mu.Lock()
	b.err = err
	if err != nil {
		l.state = StateFailed
		log.Error().Err(err).Int("waiters", b.waiters).Msg("lexicon load failed")
	} else {
		l.dict.Store(dict)
		l.state = StateReady
		log.Info().Int("words", dict.Len()).Int("waiters", b.waiters).Dur("took", time.Since(start)).Msg("lexicon loaded")
	}
	l.mu.Unlock()
	close(b.done)
	return err
}

func (l *Lexicon) build(ctx context.Context) (*trie.Trie, error) {
	if l.src == nil {
		return nil, fmt.Errorf("%w: no source configured", ErrSourceUnavailable)
	}
	rc, err := l.src.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, l.src, err)
	}
	defer rc.Close()

	t := trie.New()
	if err := scan(rc, t.Insert); err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrSourceUnavailable, l.src, err)
	}
	return t, nil
}

// State reports the current loader state.
func (l *Lexicon) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Ready reports whether queries are answered from a built dictionary.
func (l *Lexicon) Ready() bool { return l.dict.Load() != nil }

// Err returns the error of the last build while the lexicon is StateFailed.
func (l *Lexicon) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != StateFailed {
		return nil
	}
	return l.cur.err
}

// Contains reports whether word is in the lexicon (case-insensitive).
func (l *Lexicon) Contains(word string) bool {
	d := l.dict.Load()
	return d != nil && d.Contains(word)
}

// HasPrefix reports whether some word starts with prefix (case-insensitive).
func (l *Lexicon) HasPrefix(prefix string) bool {
	d := l.dict.Load()
	return d != nil && d.HasPrefix(prefix)
}

// IsValidWord is Contains with surrounding whitespace ignored.
func (l *Lexicon) IsValidWord(word string) bool {
	return l.Contains(strings.TrimSpace(word))
}

// Size returns the exact number of words after filtering (0 until Ready).
func (l *Lexicon) Size() int {
	if d := l.dict.Load(); d != nil {
		return d.Len()
	}
	return 0
}

// ApproxSize returns the coarse vocabulary size shown to players.
func (l *Lexicon) ApproxSize() int { return ApproxSize }

// Normalize applies the lexicon filter to a pre-split list.
func Normalize(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if w, ok := normalize(line); ok {
			out = append(out, w)
		}
	}
	return out
}

// Parse reads newline-delimited words from r and returns the filtered list.
func Parse(r io.Reader) ([]string, error) {
	var out []string
	err := scan(r, func(w string) { out = append(out, w) })
	return out, err
}

func scan(r io.Reader, emit func(string)) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if w, ok := normalize(sc.Text()); ok {
			emit(w)
		}
	}
	return sc.Err()
}

func normalize(line string) (string, bool) {
	w := strings.ToLower(strings.TrimSpace(line))
	n := utf8.RuneCountInString(w)
	return w, n >= MinWordLength && n <= MaxWordLength
}
