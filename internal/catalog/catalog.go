package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyCatalog = errors.New("catalog has no entries")

//go:embed words.json
var defaultWords []byte

type Entry struct {
	Word     string `json:"word"`
	Category string `json:"category"`
}

// Catalog is a read-only list of word/category pairs. Safe for concurrent reads.
type Catalog struct {
	entries []Entry
}

func New(entries []Entry) (*Catalog, error) {
	clean := make([]Entry, 0, len(entries))
	for _, e := range entries {
		e.Word = strings.TrimSpace(e.Word)
		e.Category = strings.TrimSpace(e.Category)
		if e.Word == "" {
			continue
		}
		clean = append(clean, e)
	}
	if len(clean) == 0 {
		return nil, ErrEmptyCatalog
	}
	return &Catalog{entries: clean}, nil
}

// Parse reads the same JSON layout as the embedded word list.
func Parse(data []byte) (*Catalog, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(entries)
}

// Default returns the word list bundled into the binary.
func Default() *Catalog {
	c, err := Parse(defaultWords)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Len() int { return len(c.entries) }

func (c *Catalog) At(i int) Entry { return c.entries[i] }

func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}
