package match3

// EventType classifies entries in the core's event stream. Modeled on the
// teacher's EventType iota enum (event.go), minus the wire concerns: the
// teacher's Event carries a JSON-encoded Payload []byte because events
// cross a process boundary (disk, replay file); this core's events never
// leave the process, so each event is a plain tagged struct instead.
type EventType uint8

const (
	EventUnknown EventType = iota
	EventTilesSwapped
	EventMatchDetected
	EventBombCreated
	EventTileDestroyed
	EventCoverDestroyed
	EventGroundDamaged
	EventTileLanded
	EventTileSpawned
	EventScoreChanged
	EventObjectiveProgress
	EventLevelCompleted
)

// String returns a human-readable event type name. Retained for debug
// printing only — spec.md §1 excludes human-readable event *formatting*
// as a feature, not this minimal diagnostic label.
func (t EventType) String() string {
	switch t {
	case EventTilesSwapped:
		return "tiles_swapped"
	case EventMatchDetected:
		return "match_detected"
	case EventBombCreated:
		return "bomb_created"
	case EventTileDestroyed:
		return "tile_destroyed"
	case EventCoverDestroyed:
		return "cover_destroyed"
	case EventGroundDamaged:
		return "ground_damaged"
	case EventTileLanded:
		return "tile_landed"
	case EventTileSpawned:
		return "tile_spawned"
	case EventScoreChanged:
		return "score_changed"
	case EventObjectiveProgress:
		return "objective_progress"
	case EventLevelCompleted:
		return "level_completed"
	default:
		return "unknown"
	}
}

// Event is the tagged union of everything the core can emit. Only the
// field(s) relevant to Type are populated; the rest are zero.
type Event struct {
	Type EventType

	// TilesSwapped
	From, To Position
	IsRevert bool

	// MatchDetected
	Positions []Position
	TileCount int
	SpawnBomb BombKind

	// BombCreated / TileDestroyed / CoverDestroyed / GroundDamaged /
	// TileLanded / TileSpawned all use Position plus the fields below.
	Position Position
	Kind     TileKind
	Bomb     BombKind
	CoverK   CoverKind
	GroundK  GroundKind
	Remain   uint8

	// ScoreChanged
	Delta int32

	// ObjectiveProgress
	ObjectiveIndex int
	Current        uint16
}

// EventCollector receives events emitted during simulation. A collector
// with IsEnabled() == false is expected to short-circuit emission
// entirely (the null-collector pattern spec.md §6 names).
type EventCollector interface {
	Emit(e Event)
	IsEnabled() bool
}

// NullCollector discards every event. It is the default collector and the
// one swapped in around run_until_stable when event emission must be
// suppressed (spec.md §4.9, §9).
type NullCollector struct{}

func (NullCollector) Emit(Event)      {}
func (NullCollector) IsEnabled() bool { return false }

// SliceCollector appends every emitted event to an in-memory slice, for
// callers (such as the tests) that want a full event trace.
type SliceCollector struct {
	Events []Event
}

// NewSliceCollector creates an enabled collector with the given initial
// capacity hint.
func NewSliceCollector(capacityHint int) *SliceCollector {
	return &SliceCollector{Events: make([]Event, 0, capacityHint)}
}

func (c *SliceCollector) Emit(e Event) {
	c.Events = append(c.Events, e)
}

func (c *SliceCollector) IsEnabled() bool { return true }
