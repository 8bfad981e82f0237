package tasklist

import "context"

// Stamp pairs an item id with the mutation stamp it carried when a
// reconciliation pass began.
type Stamp struct {
	ID      string
	Version uint64
}

// Snapshot captures the id and mutation stamp of every current item. A
// reconciliation pass marks at most this set synced when it completes.
func (l *List) Snapshot() []Stamp {
	out := make([]Stamp, 0, len(l.items))
	for _, item := range l.items {
		out = append(out, Stamp{ID: item.ID, Version: l.versions[item.ID]})
	}
	return out
}

// CompleteSync marks every snapshotted item that still exists and has not
// been mutated since the snapshot as synced, persisting each one. Items
// touched during the pass keep their pending state and deleted items are
// not resurrected. It returns the number of items marked.
func (l *List) CompleteSync(ctx context.Context, snapshot []Stamp) int {
	marked := 0
	for _, st := range snapshot {
		i := l.index(st.ID)
		if i < 0 || l.versions[st.ID] != st.Version {
			continue
		}
		l.items[i].Synced = true
		l.persist(ctx, l.items[i])
		marked++
	}
	return marked
}
