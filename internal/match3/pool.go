package match3

// Pools hold reusable scratch containers for one engine. Every slice
// handed out by Acquire is reset (len 0, capacity kept) before reuse,
// generalizing the teacher's triple-buffered SnapshotPool
// acquire/reset-with-capacity idiom (game_snapshot.go's AcquireWrite) and
// the slot-reuse idea behind spatial.LockFreeQueue/SPSCQueue — simplified
// to plain slice free lists since a single engine runs on a single
// goroutine and the atomics those structures need to resolve
// multi-producer contention have nothing to do here (spec.md §5).
//
// A container released back to a pool must never be referenced by the
// caller afterwards; a caller that does so is violating the Shared
// Resource Policy in spec.md §5 and may observe a later Acquire silently
// overwrite its contents.
type Pools struct {
	positionSets   [][]Position
	matchGroups    [][]MatchGroup
	candidateLists [][]shapeCandidate
}

// NewPools creates an empty set of free lists.
func NewPools() *Pools {
	return &Pools{}
}

// AcquirePositions returns a zero-length []Position, reusing backing
// storage from a prior Release when available.
func (p *Pools) AcquirePositions() []Position {
	n := len(p.positionSets)
	if n == 0 {
		return make([]Position, 0, 16)
	}
	s := p.positionSets[n-1]
	p.positionSets = p.positionSets[:n-1]
	return s[:0]
}

// ReleasePositions returns s to the free list. The caller must not use s
// again after this call.
func (p *Pools) ReleasePositions(s []Position) {
	p.positionSets = append(p.positionSets, s)
}

// AcquireMatchGroups returns a zero-length []MatchGroup.
func (p *Pools) AcquireMatchGroups() []MatchGroup {
	n := len(p.matchGroups)
	if n == 0 {
		return make([]MatchGroup, 0, 8)
	}
	s := p.matchGroups[n-1]
	p.matchGroups = p.matchGroups[:n-1]
	return s[:0]
}

// ReleaseMatchGroups returns s to the free list.
func (p *Pools) ReleaseMatchGroups(s []MatchGroup) {
	p.matchGroups = append(p.matchGroups, s)
}

// acquireCandidates returns a zero-length []shapeCandidate.
func (p *Pools) acquireCandidates() []shapeCandidate {
	n := len(p.candidateLists)
	if n == 0 {
		return make([]shapeCandidate, 0, 32)
	}
	s := p.candidateLists[n-1]
	p.candidateLists = p.candidateLists[:n-1]
	return s[:0]
}

// releaseCandidates returns s to the free list.
func (p *Pools) releaseCandidates(s []shapeCandidate) {
	p.candidateLists = append(p.candidateLists, s)
}
