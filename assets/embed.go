package assets

import (
	"embed"
	"io"
)

// words.txt is a small default list so the server runs without WORDS_FILE.
//
//go:embed words.txt
var FS embed.FS

// OpenWordList opens the embedded newline-delimited word list.
func OpenWordList() (io.ReadCloser, error) {
	return FS.Open("words.txt")
}
