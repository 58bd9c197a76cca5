package core

import "time"

// Snapshot is the full persisted set of merged, deduplicated transactions
// plus run metadata. It is rewritten wholesale at the end of every
// successful sync run; it is never appended to.
type Snapshot struct {
	LastUpdated        *time.Time    `json:"lastUpdated"`
	Transactions       []Transaction `json:"transactions"`
	DiscoveredAccounts []string      `json:"discoveredAccounts,omitempty"`
}

// EmptySnapshot is the state a run starts from when nothing was persisted
// before, or when the snapshot file cannot be read or parsed.
func EmptySnapshot() Snapshot {
	return Snapshot{Transactions: []Transaction{}}
}

// MergeTransactions folds freshly fetched transactions into the snapshot's
// transaction list by dedup key. Prior entries keep their position; a fetched
// transaction whose key already exists is field-merged into that entry
// (fetched fields win), otherwise it is appended. The result preserves
// insertion order, so repeated runs over the same data are stable.
func MergeTransactions(prior, fetched []Transaction) []Transaction {
	merged := make([]Transaction, 0, len(prior)+len(fetched))
	index := make(map[string]int, len(prior))
	for _, tx := range prior {
		// A well-formed snapshot has one entry per key; if an old file
		// carries duplicates, the last one wins and the rest are dropped.
		if i, ok := index[tx.Key()]; ok {
			merged[i] = tx
			continue
		}
		index[tx.Key()] = len(merged)
		merged = append(merged, tx)
	}
	for _, tx := range fetched {
		key := tx.Key()
		if i, ok := index[key]; ok {
			merged[i] = merged[i].Merge(tx)
			continue
		}
		index[key] = len(merged)
		merged = append(merged, tx)
	}
	return merged
}
