// internal/trie/trie.go
//
// Prefix tree used as the word dictionary.
// Supports:
//   - Insert:    add a word (no-op when already present).
//   - Contains:  exact-word membership.
//   - HasPrefix: whether any inserted word starts with a prefix.
//
// Every operation walks one node per character, so cost is proportional to the
// length of the query and independent of how many words are stored.
// Queries are lowercase-normalized; a Trie is not safe for concurrent Insert,
// but concurrent reads after the build completes are fine.

package trie

import "strings"

// node is a single character edge target. The root represents the empty prefix.
type node struct {
	children map[rune]*node
	word     bool // true if the path from root to here spells an inserted word
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// Trie is a rooted character tree.
type Trie struct {
	root  *node
	count int
}

// New returns an empty Trie.
func New() *Trie {
	return &Trie{root: newNode()}
}

// FromWords builds a Trie by inserting every word in order.
func FromWords(words []string) *Trie {
	t := New()
	for _, w := range words {
		t.Insert(w)
	}
	return t
}

// Insert adds word to the trie.
func (t *Trie) Insert(word string) {
	n := t.root
	for _, r := range strings.ToLower(word) {
		child, ok := n.children[r]
		if !ok {
			child = newNode()
			n.children[r] = child
		}
		n = child
	}
	if !n.word {
		n.word = true
		t.count++
	}
}

// Contains reports whether word was inserted verbatim.
func (t *Trie) Contains(word string) bool {
	n := t.find(word)
	return n != nil && n.word
}

// HasPrefix reports whether some inserted word starts with prefix.
// The empty prefix matches as soon as the trie is non-empty.
func (t *Trie) HasPrefix(prefix string) bool {
	n := t.find(prefix)
	if n == nil {
		return false
	}
	return n.word || len(n.children) > 0
}

// Len returns the number of distinct words inserted.
func (t *Trie) Len() int { return t.count }

// find walks the trie along s and returns the node it ends on, or nil.
func (t *Trie) find(s string) *node {
	n := t.root
	for _, r := range strings.ToLower(s) {
		child, ok := n.children[r]
		if !ok {
			return nil
		}
		n = child
	}
	return n
}
