// internal/catalog/catalog.go
//
// Animal catalog for the game.
//
// Responsibilities:
//   - Load the animal records from a configured file or fall back to the embedded default.
//   - Validate the list (well-formed lines, unique ids, enough animals for the hard tier).
//   - Supply lookups: All, Len, At, ByID, Search.
//
// File format, one animal per line:
//   id|name|emoji|food|foodEmoji|fact
// Blank lines and lines starting with "#" are ignored.
//
// Initialization is run once (sync.Once); the list is immutable afterwards.

package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/whoeats/assets"
)

// MinAnimals is the smallest catalog that can fill a hard round.
const MinAnimals = 6

const fieldCount = 6

// Animal is one fixed catalog record.
type Animal struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Emoji     string `json:"emoji"`
	Food      string `json:"food"`
	FoodEmoji string `json:"foodEmoji"`
	Fact      string `json:"fact"`
}

var (
	initOnce   sync.Once
	animals    []Animal
	byID       map[string]int
	initialErr error
)

// Init loads the catalog exactly once.
// If path is empty the embedded default (assets/animals.txt) is used.
func Init(path string) error {
	initOnce.Do(func() {
		var r io.ReadCloser
		var err error
		if path != "" {
			r, err = os.Open(path)
		} else {
			r, err = assets.Animals()
		}
		if err != nil {
			initialErr = fmt.Errorf("catalog: open: %w", err)
			return
		}
		defer r.Close()

		list, err := Parse(r)
		if err != nil {
			initialErr = err
			return
		}
		animals = list
		byID = make(map[string]int, len(list))
		for i, a := range list {
			byID[a.ID] = i
		}
	})
	return initialErr
}

// Parse reads catalog lines from r.
func Parse(r io.Reader) ([]Animal, error) {
	var out []Animal
	seen := make(map[string]struct{})
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) != fieldCount {
			return nil, fmt.Errorf("catalog: line %d: want %d fields, got %d", lineNo, fieldCount, len(parts))
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		a := Animal{ID: parts[0], Name: parts[1], Emoji: parts[2], Food: parts[3], FoodEmoji: parts[4], Fact: parts[5]}
		if a.ID == "" || a.Name == "" || a.Food == "" {
			return nil, fmt.Errorf("catalog: line %d: id, name and food are required", lineNo)
		}
		if _, dup := seen[a.ID]; dup {
			return nil, fmt.Errorf("catalog: line %d: duplicate id %q", lineNo, a.ID)
		}
		seen[a.ID] = struct{}{}
		out = append(out, a)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("catalog: read: %w", err)
	}
	if len(out) < MinAnimals {
		return nil, fmt.Errorf("catalog: need at least %d animals, got %d", MinAnimals, len(out))
	}
	return out, nil
}

// All returns a copy of the catalog in file order.
func All() []Animal {
	out := make([]Animal, len(animals))
	copy(out, animals)
	return out
}

// Len reports the number of loaded animals.
func Len() int { return len(animals) }

// At returns the animal at catalog index i.
func At(i int) (Animal, bool) {
	if i < 0 || i >= len(animals) {
		return Animal{}, false
	}
	return animals[i], true
}

// ByID looks up an animal by id.
func ByID(id string) (Animal, bool) {
	i, ok := byID[id]
	if !ok {
		return Animal{}, false
	}
	return animals[i], true
}
