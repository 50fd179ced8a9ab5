package stats

import (
	"sync"
)

// MemoryStore keeps records under a lock; matches finishing at the same
// time publish from different goroutines.
type MemoryStore struct {
	sync.RWMutex
	records map[int64]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[int64]Record{}}
}

func (s *MemoryStore) Get(playerID int64) (Record, bool) {
	s.RLock()
	defer s.RUnlock()
	record, found := s.records[playerID]
	return record, found
}

func (s *MemoryStore) Upsert(playerID int64, record Record) error {
	s.Lock()
	defer s.Unlock()
	s.records[playerID] = record
	return nil
}

func (s *MemoryStore) Records() []Record {
	s.RLock()
	defer s.RUnlock()
	records := make([]Record, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, record)
	}
	return records
}
