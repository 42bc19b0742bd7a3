package match3

// ScoreSystem computes score increments. Injected so the core never
// hard-codes a scoring formula (spec.md §6).
type ScoreSystem interface {
	MatchScore(group MatchGroup) int32
	SpecialMoveScore(aKind TileKind, aBomb BombKind, bKind TileKind, bBomb BombKind) int32
}

// DefaultScoreSystem is a simple, deterministic scorer: 10 points per
// cleared cell, plus a flat bonus for any special-move (bomb/combo)
// interaction.
type DefaultScoreSystem struct{}

func (DefaultScoreSystem) MatchScore(group MatchGroup) int32 {
	return int32(len(group.Positions)) * 10
}

func (DefaultScoreSystem) SpecialMoveScore(aKind TileKind, aBomb BombKind, bKind TileKind, bBomb BombKind) int32 {
	if aBomb != BombNone || bBomb != BombNone {
		return 250
	}
	return 0
}

// SpawnModel predicts the TileKind for a newly refilled tile. Injected so
// AI-driven spawn weighting can replace the default without touching the
// core (spec.md §6; spec.md §1 explicitly excludes "AI strategy weights"
// from the core itself).
type SpawnModel interface {
	Predict(state *GameState, column int, ctx SpawnContext) TileKind
}

// SpawnContext carries whatever contextual information a SpawnModel might
// want; the default model ignores it entirely.
type SpawnContext struct {
	Tick uint64
}

// UniformSpawnModel draws uniformly from the active colour palette
// (state.TileTypeCount colours, in Palette order). This is spec.md §6's
// named default.
type UniformSpawnModel struct{}

func (UniformSpawnModel) Predict(state *GameState, column int, ctx SpawnContext) TileKind {
	n := state.TileTypeCount
	if n <= 0 || n > len(Palette) {
		n = len(Palette)
	}
	return Palette[state.Random.NextN(n)]
}

// CellConfig describes the initial contents of one cell for LevelConfig.
type CellConfig struct {
	Tile       TileKind
	Bomb       BombKind
	GroundKind GroundKind
	GroundHP   uint8
	CoverKind  CoverKind
	CoverHP    uint8
	CoverDyn   bool
}

// LevelConfig is the external input describing a board to construct
// (spec.md §6). Loading one from a file format is an external
// collaborator's job (internal/levelio), never this package's.
type LevelConfig struct {
	Width, Height int
	TileTypeCount int
	Cells         []CellConfig // row-major, length Width*Height
	MoveLimit     uint16
	Objectives    []Objective // up to MaxObjectives
	Seed          uint64
}

// NewGameStateFromConfig builds a GameState from a LevelConfig.
func NewGameStateFromConfig(cfg LevelConfig) *GameState {
	s := NewGameState(cfg.Width, cfg.Height, cfg.TileTypeCount, cfg.Seed)
	s.MoveLimit = cfg.MoveLimit

	for i, cc := range cfg.Cells {
		if i >= len(s.Grid) {
			break
		}
		p := s.Grid[i].LogicalPos
		s.Grid[i].Kind = cc.Tile
		s.Grid[i].Bomb = cc.Bomb
		if cc.Tile != KindNone {
			s.Grid[i].ID = s.AllocTileID()
		}
		s.Grid[i].LogicalPos = p
		s.Grid[i].VisualPos = Vec2{X: float32(p.X), Y: float32(p.Y)}

		s.Grounds[i] = Ground{Kind: cc.GroundKind, HP: cc.GroundHP}
		s.Covers[i] = Cover{Kind: cc.CoverKind, HP: cc.CoverHP, Dynamic: cc.CoverDyn}
	}

	n := len(cfg.Objectives)
	if n > MaxObjectives {
		n = MaxObjectives
	}
	for i := 0; i < n; i++ {
		s.Objectives[i] = cfg.Objectives[i]
	}
	s.ActiveObjCount = n

	return s
}

// TapIntent is a player move expressed as a single tapped cell (paired
// with an implicit swap direction resolved by the caller before reaching
// the engine, or used for tap-to-select UIs outside this package).
type TapIntent struct {
	Position Position
}

// SwipeDirection is one of the four orthogonal swipe directions.
type SwipeDirection uint8

const (
	SwipeUp SwipeDirection = iota
	SwipeDown
	SwipeLeft
	SwipeRight
)

// SwipeIntent is a player move expressed as a swipe from a cell in a
// direction. Engine.ApplyMove wants the resolved (from, to) pair;
// ResolveSwipe bridges the two per spec.md §6.
type SwipeIntent struct {
	From      Position
	Direction SwipeDirection
}

// ResolveSwipe returns the target cell implied by a SwipeIntent.
func ResolveSwipe(intent SwipeIntent) (from, to Position) {
	switch intent.Direction {
	case SwipeUp:
		return intent.From, intent.From.Add(0, -1)
	case SwipeDown:
		return intent.From, intent.From.Add(0, 1)
	case SwipeLeft:
		return intent.From, intent.From.Add(-1, 0)
	default:
		return intent.From, intent.From.Add(1, 0)
	}
}
