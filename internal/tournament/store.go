package tournament

import (
	"encoding/json"

	"github.com/dgraph-io/badger/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// standingsKey namespaces a per-engine record under an engine name, the
// way storage.go keys preferences/stats under fixed strings — grounded on
// hailam-chessplay/internal/storage/storage.go.
func standingsKey(name string) []byte {
	return []byte("standings/" + name)
}

// Store persists Ranking records across tournament runs so a long-lived
// pool of engines can accumulate standings over many invocations instead
// of starting from zero every time.
type Store struct {
	db *badger.DB
}

// OpenStore opens (creating if necessary) a Badger database at dir.
func OpenStore(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "tournament: opening standings store")
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (st *Store) Close() error {
	if st.db == nil {
		return nil
	}
	return st.db.Close()
}

// record is the JSON-serialized form of a Ranking keyed by engine name
// rather than schedule index, since indices are only meaningful within a
// single Tournament run.
type record struct {
	Wins   int `json:"wins"`
	Draws  int `json:"draws"`
	Losses int `json:"losses"`
}

// Save merges rankings into the persisted standings for the named engines,
// keyed positionally against engines.
func (st *Store) Save(engines []Engine, rankings []Ranking) error {
	var errs *multierror.Error

	for i, engine := range engines {
		if i >= len(rankings) {
			break
		}
		if err := st.merge(engine.Name, rankings[i]); err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "engine %q", engine.Name))
		}
	}

	return errs.ErrorOrNil()
}

func (st *Store) merge(name string, r Ranking) error {
	existing, err := st.load(name)
	if err != nil {
		return err
	}

	existing.Wins += r.Wins
	existing.Draws += r.Draws
	existing.Losses += r.Losses

	data, err := json.Marshal(existing)
	if err != nil {
		return err
	}

	return st.db.Update(func(txn *badger.Txn) error {
		return txn.Set(standingsKey(name), data)
	})
}

func (st *Store) load(name string) (record, error) {
	var rec record

	err := st.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(standingsKey(name))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})

	return rec, err
}

// Load returns the cumulative Ranking persisted for name, zero-valued if
// nothing has been saved yet.
func (st *Store) Load(name string) (Ranking, error) {
	rec, err := st.load(name)
	if err != nil {
		return Ranking{}, err
	}
	return Ranking{Wins: rec.Wins, Draws: rec.Draws, Losses: rec.Losses}, nil
}
