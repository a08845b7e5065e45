// Package registry keeps an indexed table of decorated functions so their
// counters can be reported by name.
package registry

import (
	"fmt"
	"slices"
	"strings"

	memdb "github.com/hashicorp/go-memdb"
	"github.com/on-the-ground/deco_ive_go/deco"
)

const (
	table     = "funcs"
	indexID   = "id"
	indexName = "name"
)

// Identified is anything carrying a decorated function's identity.
// *deco.Func satisfies it.
type Identified interface {
	Name() string
	Doc() string
	State() *deco.State
}

// Entry is one registered function. Wrappers sharing a state bag map to the
// same entry.
type Entry struct {
	ID    string
	Name  string
	Doc   string
	State *deco.State
}

// Registry is an in-memory table of entries indexed by state id and name.
type Registry struct {
	db *memdb.MemDB
}

func schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			table: {
				Name: table,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {
						Name:    indexID,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
					indexName: {
						Name:         indexName,
						AllowMissing: true,
						Indexer:      &memdb.StringFieldIndex{Field: "Name"},
					},
				},
			},
		},
	}
}

// New returns an empty registry.
func New() (*Registry, error) {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		return nil, fmt.Errorf("failed to create registry: %w", err)
	}
	return &Registry{db: db}, nil
}

// Register adds f, replacing any entry for the same state bag.
func (r *Registry) Register(f Identified) (Entry, error) {
	entry := &Entry{
		ID:    f.State().ID(),
		Name:  f.Name(),
		Doc:   f.Doc(),
		State: f.State(),
	}

	txn := r.db.Txn(true)
	defer txn.Abort()

	if err := txn.Insert(table, entry); err != nil {
		return Entry{}, fmt.Errorf("failed to register %q: %w", entry.Name, err)
	}
	txn.Commit()

	deco.Logger().Sugar().Debugf("registered func: name: %v, stateId: %v", entry.Name, entry.ID)
	return *entry, nil
}

// Get returns the entry for a state bag id.
func (r *Registry) Get(id string) (Entry, bool, error) {
	txn := r.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(table, indexID, id)
	if err != nil || raw == nil {
		return Entry{}, false, err
	}
	return *raw.(*Entry), true, nil
}

// Lookup returns every entry registered under name.
func (r *Registry) Lookup(name string) ([]Entry, error) {
	txn := r.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(table, indexName, name)
	if err != nil {
		return nil, err
	}
	return collect(it), nil
}

// All returns every entry ordered by name.
func (r *Registry) All() ([]Entry, error) {
	txn := r.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(table, indexID)
	if err != nil {
		return nil, err
	}
	entries := collect(it)
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Name, b.Name)
	})
	return entries, nil
}

func collect(it memdb.ResultIterator) []Entry {
	var entries []Entry
	for raw := it.Next(); raw != nil; raw = it.Next() {
		entries = append(entries, *raw.(*Entry))
	}
	return entries
}
