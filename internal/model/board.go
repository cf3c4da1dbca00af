package model

import (
	"sort"

	"github.com/mazekit/mazegame-go/internal/dependencies/random"
)

// Position identifies a cell on the board
type Position struct {
	Row int `json:"row"` // 0-indexed from top
	Col int `json:"col"` // 0-indexed from left
}

// Step returns the position one cell away in the given direction.
// Callers must pre-validate bounds with Board.Valid.
func (p Position) Step(dir Direction) Position {
	dr, dc := dir.Offset()
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// InsertSlot identifies an insertion lane: the edge the loose tile enters
// from and the guide index of the lane along that edge. Guide indices count
// only the odd, non-corner rows/columns.
type InsertSlot struct {
	Dir        Direction `json:"dir"`
	GuideIndex int       `json:"guide_index"`
}

// TargetIndex returns the row/column index of the lane on the grid.
// Lanes sit at the odd indices, so corners (even indices) are never lanes.
func (s InsertSlot) TargetIndex() int {
	return 2*s.GuideIndex + 1
}

// PlayerToken is a player's piece on the board
type PlayerToken struct {
	PlayerID PlayerID `json:"player_id"`
	Position Position `json:"position"`
	Score    int      `json:"score"`
}

// Board owns the grid of tiles, the one loose tile circulating in and out of
// it, and the player tokens. The zero value is not usable; construct with
// NewBoard. Board performs no internal locking: callers serialize all
// mutating calls per board.
type Board struct {
	GameID GameID `json:"game_id"`

	// Cells is the height x width grid, row-major: Cells[row][col]
	Cells [][]Tile `json:"cells"`

	// LooseTile is the one tile not currently on the grid
	LooseTile Tile `json:"loose_tile"`

	// StagedSlot is the slot the loose tile will enter from, or nil if no
	// insertion has been staged this turn
	StagedSlot *InsertSlot `json:"staged_slot,omitempty"`

	// Tokens maps each player to their token
	Tokens map[PlayerID]*PlayerToken `json:"tokens"`
}

// startCorners lists token starting positions by player index:
// first player top-left, second bottom-right, third top-right,
// fourth bottom-left.
func startCorners(width, height int) [4]Position {
	return [4]Position{
		{Row: 0, Col: 0},
		{Row: height - 1, Col: width - 1},
		{Row: 0, Col: width - 1},
		{Row: height - 1, Col: 0},
	}
}

// RandomTile samples a tile uniformly over shape x orientation from the
// given random source
func RandomTile(rnd random.Random) Tile {
	return Tile{
		Shape:       Shapes[rnd.Intn(len(Shapes))],
		Orientation: Directions[rnd.Intn(len(Directions))],
	}
}

// NewBoard creates a board of the given dimensions, populated with random
// tiles except for the four fixed corner pieces, plus one random loose tile.
// Player tokens are placed on the corners in ascending PlayerID order.
// Dimensions must be odd and at least 5 so every edge has insertion lanes.
func NewBoard(gameID GameID, width, height int, players []PlayerID, rnd random.Random) (*Board, error) {
	if width < 5 || height < 5 || width%2 == 0 || height%2 == 0 {
		return nil, ErrInvalidBoardSize
	}
	if len(players) > 4 {
		return nil, ErrTooManyPlayers
	}

	cells := make([][]Tile, height)
	for row := range cells {
		cells[row] = make([]Tile, width)
		for col := range cells[row] {
			cells[row][col] = RandomTile(rnd)
		}
	}

	// Fixed L corners, each passing along the two adjacent edges into the board
	cells[0][0] = Tile{Shape: ShapeCorner, Orientation: East}              // E+S
	cells[0][width-1] = Tile{Shape: ShapeCorner, Orientation: South}       // S+W
	cells[height-1][0] = Tile{Shape: ShapeCorner, Orientation: North}      // N+E
	cells[height-1][width-1] = Tile{Shape: ShapeCorner, Orientation: West} // W+N

	ordered := append([]PlayerID(nil), players...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	corners := startCorners(width, height)
	tokens := make(map[PlayerID]*PlayerToken, len(ordered))
	for i, id := range ordered {
		tokens[id] = &PlayerToken{PlayerID: id, Position: corners[i]}
	}

	return &Board{
		GameID:    gameID,
		Cells:     cells,
		LooseTile: RandomTile(rnd),
		Tokens:    tokens,
	}, nil
}

// Width returns the number of columns
func (b *Board) Width() int {
	return len(b.Cells[0])
}

// Height returns the number of rows
func (b *Board) Height() int {
	return len(b.Cells)
}

// Get returns the tile at the given cell. Argument order is column then
// row; callers depend on this convention. Out-of-bounds access panics, as
// does any slice index: it is a contract violation, not a runtime error.
func (b *Board) Get(col, row int) Tile {
	return b.Cells[row][col]
}

// IsValidPosition returns true if the position is within bounds
func (b *Board) IsValidPosition(pos Position) bool {
	return pos.Row >= 0 && pos.Row < b.Height() && pos.Col >= 0 && pos.Col < b.Width()
}

// Valid reports whether stepping one cell from pos in dir stays in bounds
func (b *Board) Valid(pos Position, dir Direction) bool {
	switch dir {
	case North:
		return pos.Row > 0
	case South:
		return pos.Row < b.Height()-1
	case West:
		return pos.Col > 0
	case East:
		return pos.Col < b.Width()-1
	}
	return false
}

// LaneCount returns the number of insertion lanes along the given edge
func (b *Board) LaneCount(dir Direction) int {
	if dir == North || dir == South {
		return (b.Width() - 1) / 2
	}
	return (b.Height() - 1) / 2
}

// StageInsertion stages the loose tile at the given slot. The slot must
// name an existing guide lane on that edge.
func (b *Board) StageInsertion(dir Direction, guideIndex int) error {
	if guideIndex < 0 || guideIndex >= b.LaneCount(dir) {
		return ErrInvalidInsertSlot
	}
	b.StagedSlot = &InsertSlot{Dir: dir, GuideIndex: guideIndex}
	return nil
}

// ClearStagedInsertion unstages any staged slot
func (b *Board) ClearStagedInsertion() {
	b.StagedSlot = nil
}

// RotateLooseTile turns the loose tile 90 degrees clockwise
func (b *Board) RotateLooseTile() {
	b.LooseTile.Rotate()
}

// InsertEntry returns the cell the loose tile will occupy after insertion
// at the given slot: the lane cell on the edge the tile enters from.
func (b *Board) InsertEntry(slot InsertSlot) Position {
	target := slot.TargetIndex()
	switch slot.Dir {
	case North:
		return Position{Row: 0, Col: target}
	case South:
		return Position{Row: b.Height() - 1, Col: target}
	case West:
		return Position{Row: target, Col: 0}
	case East:
		return Position{Row: target, Col: b.Width() - 1}
	}
	panic("invalid insert slot direction")
}

// InsertExit returns the cell whose tile is pushed off the board by an
// insertion at the given slot: the lane cell on the opposite edge.
func (b *Board) InsertExit(slot InsertSlot) Position {
	target := slot.TargetIndex()
	switch slot.Dir {
	case North:
		return Position{Row: b.Height() - 1, Col: target}
	case South:
		return Position{Row: 0, Col: target}
	case West:
		return Position{Row: target, Col: b.Width() - 1}
	case East:
		return Position{Row: target, Col: 0}
	}
	panic("invalid insert slot direction")
}

// InsertLooseTile slides the loose tile into the staged lane, shifting every
// tile in the lane one cell away from the entry edge. The tile pushed off
// the far edge becomes the new loose tile and the slot is unstaged. A call
// with no staged slot is a no-op: that is the documented idle state outside
// the insertion phase.
//
// Lanes sit at odd indices only, so the four corner cells are never touched.
// Tokens are not relocated here; the caller applies the carry rule
// atomically with this mutation.
func (b *Board) InsertLooseTile() {
	if b.StagedSlot == nil {
		return
	}
	slot := *b.StagedSlot

	// Start from the cell being pushed off and walk toward the entry edge,
	// pulling each tile one cell back toward the start.
	pos := b.InsertExit(slot)
	pushed := b.Cells[pos.Row][pos.Col]
	for b.Valid(pos, slot.Dir) {
		next := pos.Step(slot.Dir)
		b.Cells[pos.Row][pos.Col] = b.Cells[next.Row][next.Col]
		pos = next
	}
	b.Cells[pos.Row][pos.Col] = b.LooseTile

	b.LooseTile = pushed
	b.StagedSlot = nil
}

// ReachableCoords returns every cell reachable from the given cell by
// repeatedly crossing mutually matched passages: a move from A toward B
// requires A to have a passage toward B and B a passage back toward A.
// The result always contains from itself. O(cells) time and space.
func (b *Board) ReachableCoords(from Position) map[Position]bool {
	visited := map[Position]bool{from: true}
	frontier := []Position{from}

	for len(frontier) > 0 {
		curr := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		for _, dir := range b.Cells[curr.Row][curr.Col].Paths() {
			if !b.Valid(curr, dir) {
				continue
			}
			next := curr.Step(dir)
			if !b.Cells[next.Row][next.Col].HasPath(dir.Opposite()) {
				continue
			}
			if visited[next] {
				continue
			}
			visited[next] = true
			frontier = append(frontier, next)
		}
	}

	return visited
}

// OrderedTokens returns the tokens in ascending PlayerID order for
// deterministic iteration
func (b *Board) OrderedTokens() []*PlayerToken {
	ids := make([]PlayerID, 0, len(b.Tokens))
	for id := range b.Tokens {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	tokens := make([]*PlayerToken, len(ids))
	for i, id := range ids {
		tokens[i] = b.Tokens[id]
	}
	return tokens
}
