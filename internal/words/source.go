// internal/words/source.go
//
// Sources supply raw newline-delimited word text to a Lexicon. Where the text
// comes from is opaque to the loader:
//   - FileSource:     a word list on disk (WORDS_FILE)
//   - TextSource:     an in-memory blob
//   - EmbeddedSource: the small list bundled in the assets package
//   - SQLiteSource:   the `words` table of a SQLite database (WORDS_DB)

package words

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/robalobadob/boggle/assets"
)

// Source opens the raw word list. Implementations report any failure to
// deliver data as an error; the Lexicon wraps it in ErrSourceUnavailable.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	fmt.Stringer
}

// FileSource reads words from a file path.
type FileSource string

func (p FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(string(p))
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (p FileSource) String() string { return "file " + string(p) }

// TextSource serves an in-memory blob.
type TextSource string

func (s TextSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(string(s))), nil
}

func (s TextSource) String() string { return "text" }

// EmbeddedSource serves the word list compiled into the binary.
type EmbeddedSource struct{}

func (EmbeddedSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return assets.OpenWordList()
}

func (EmbeddedSource) String() string { return "embedded" }

// SQLiteSource reads the `words` table (see internal/db migrations).
type SQLiteSource struct {
	DB *sql.DB
}

func (s SQLiteSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if s.DB == nil {
		return nil, fmt.Errorf("nil database")
	}
	rows, err := s.DB.QueryContext(ctx, `SELECT word FROM words ORDER BY word`)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	var sb strings.Builder
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		sb.WriteString(w)
		sb.WriteByte('\n')
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return io.NopCloser(strings.NewReader(sb.String())), nil
}

func (s SQLiteSource) String() string { return "sqlite" }
