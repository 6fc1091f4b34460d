package state

import "github.com/atomicstack/spider-tui/internal/dataset"

// DatasetStore maps dataset paths to their rows. Updates replace a path's
// rows wholesale.
type DatasetStore interface {
	Rows(dataset.Path) []dataset.Datum
	Set(dataset.Path, []dataset.Datum)
}

type datasetStore struct {
	rows map[dataset.Path][]dataset.Datum
}

func NewDatasetStore() DatasetStore {
	return &datasetStore{rows: make(map[dataset.Path][]dataset.Datum)}
}

// Rows returns the stored rows without copying; callers must not mutate
// them.
func (s *datasetStore) Rows(path dataset.Path) []dataset.Datum {
	return s.rows[path]
}

func (s *datasetStore) Set(path dataset.Path, rows []dataset.Datum) {
	dup := make([]dataset.Datum, len(rows))
	copy(dup, rows)
	s.rows[path] = dup
}
