package threadcontext

import (
	"context"

	"github.com/lixenwraith/logprops/contextdata"
	"github.com/lixenwraith/logprops/recycler"
)

// Snapshotter takes mutable per-event copies of the diagnostic map and
// recycles their storage once the event is done.
type Snapshotter struct {
	maps recycler.Recycler[*contextdata.SortedArrayStringMap]
}

// NewSnapshotter creates a Snapshotter backed by the recycler in spec.
func NewSnapshotter(spec recycler.Spec) *Snapshotter {
	return &Snapshotter{
		maps: recycler.New(spec,
			contextdata.NewSortedArrayStringMap,
			func(m *contextdata.SortedArrayStringMap) { _ = m.Clear() },
		),
	}
}

// Snapshot copies the map carried by ctx. The copy is owned by the caller
// until it is passed to Release.
func (s *Snapshotter) Snapshot(ctx context.Context) *contextdata.SortedArrayStringMap {
	snapshot := s.maps.Acquire()
	// the snapshot is empty, so this is a bulk array copy
	_ = snapshot.PutAll(Map(ctx))
	return snapshot
}

// Release hands a snapshot back for reuse.
func (s *Snapshotter) Release(snapshot *contextdata.SortedArrayStringMap) {
	if snapshot == nil || snapshot.IsFrozen() {
		return
	}
	s.maps.Release(snapshot)
}
