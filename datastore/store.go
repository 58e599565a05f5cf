// Package datastore holds loaded sales tables in memory, content-addressed by a hash of the
// uploaded file. The aggregation pipeline itself stays a pure function of its inputs; this is the
// only place where loaded state lives between requests.
package datastore

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"hermannm.dev/salesdash/csv"
	"hermannm.dev/salesdash/sales"
	"hermannm.dev/wrap"
)

// A loaded sales dataset. The table is immutable after load, so datasets may be shared read-only
// across concurrent requests.
type Dataset struct {
	// Hex-encoded SHA-256 of the uploaded file's bytes. Uploading identical content twice yields
	// the same dataset.
	ID         string      `json:"id"`
	Table      sales.Table `json:"-"`
	UploadedAt time.Time   `json:"uploadedAt"`
}

type Store struct {
	lock     sync.RWMutex
	datasets map[string]Dataset
}

func NewStore() *Store {
	return &Store{datasets: make(map[string]Dataset)}
}

// Loads a sales table from the given CSV file contents, unless identical contents were uploaded
// before, in which case the previously loaded dataset is returned with alreadyLoaded set.
func (store *Store) LoadDataset(csvData []byte) (dataset Dataset, alreadyLoaded bool, err error) {
	hash := sha256.Sum256(csvData)
	id := hex.EncodeToString(hash[:])

	store.lock.RLock()
	dataset, alreadyLoaded = store.datasets[id]
	store.lock.RUnlock()
	if alreadyLoaded {
		return dataset, true, nil
	}

	reader, err := csv.NewReader(bytes.NewReader(csvData), false)
	if err != nil {
		return Dataset{}, false, wrap.Error(err, "failed to read uploaded CSV file")
	}

	table, err := sales.LoadTable(reader)
	if err != nil {
		return Dataset{}, false, err
	}

	dataset = Dataset{ID: id, Table: table, UploadedAt: time.Now()}

	store.lock.Lock()
	defer store.lock.Unlock()
	// Another request may have loaded the same content while we parsed; since loading is
	// idempotent, keeping the first stored dataset is safe either way.
	if existing, exists := store.datasets[id]; exists {
		return existing, true, nil
	}
	store.datasets[id] = dataset

	return dataset, false, nil
}

func (store *Store) GetDataset(id string) (Dataset, bool) {
	store.lock.RLock()
	defer store.lock.RUnlock()

	dataset, exists := store.datasets[id]
	return dataset, exists
}
