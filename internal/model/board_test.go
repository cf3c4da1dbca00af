package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazekit/mazegame-go/internal/dependencies/random"
)

func newTestBoard(t *testing.T, width, height int, players ...PlayerID) *Board {
	t.Helper()
	board, err := NewBoard("game-1", width, height, players, random.NewSeeded(1))
	require.NoError(t, err)
	return board
}

// tileCensus counts tiles on the board plus the loose tile by
// shape/orientation, for conservation checks
func tileCensus(b *Board) map[Tile]int {
	census := make(map[Tile]int)
	for _, row := range b.Cells {
		for _, tile := range row {
			tile.WhoseTarget = nil
			census[tile]++
		}
	}
	loose := b.LooseTile
	loose.WhoseTarget = nil
	census[loose]++
	return census
}

func TestNewBoardDimensions(t *testing.T) {
	board := newTestBoard(t, 7, 5, "p1")
	assert.Equal(t, 7, board.Width())
	assert.Equal(t, 5, board.Height())
}

func TestNewBoardRejectsBadDimensions(t *testing.T) {
	rnd := random.NewSeeded(1)
	for _, dims := range [][2]int{{4, 7}, {7, 4}, {3, 7}, {7, 3}, {0, 0}, {6, 6}} {
		_, err := NewBoard("game-1", dims[0], dims[1], nil, rnd)
		assert.ErrorIs(t, err, ErrInvalidBoardSize, "dims %v", dims)
	}
}

func TestNewBoardRejectsTooManyPlayers(t *testing.T) {
	players := []PlayerID{"p1", "p2", "p3", "p4", "p5"}
	_, err := NewBoard("game-1", 7, 7, players, random.NewSeeded(1))
	assert.ErrorIs(t, err, ErrTooManyPlayers)
}

func TestNewBoardCornerInvariant(t *testing.T) {
	// Every corner is an L with exactly two perpendicular passages
	// pointing into the board
	for _, dims := range [][2]int{{5, 5}, {7, 7}, {9, 5}} {
		board := newTestBoard(t, dims[0], dims[1], "p1")
		w, h := board.Width(), board.Height()

		corners := map[Position][]Direction{
			{Row: 0, Col: 0}:         {East, South},
			{Row: 0, Col: w - 1}:     {South, West},
			{Row: h - 1, Col: 0}:     {North, East},
			{Row: h - 1, Col: w - 1}: {West, North},
		}
		for pos, want := range corners {
			tile := board.Get(pos.Col, pos.Row)
			assert.Equal(t, ShapeCorner, tile.Shape, "corner %v", pos)
			assert.ElementsMatch(t, want, tile.Paths(), "corner %v", pos)
		}
	}
}

func TestNewBoardTokensStartOnCornersInPlayerIDOrder(t *testing.T) {
	// Deliberately unsorted input: placement follows ascending PlayerID
	board := newTestBoard(t, 7, 7, "delta", "bravo", "alpha", "charlie")

	require.Len(t, board.Tokens, 4)
	assert.Equal(t, Position{Row: 0, Col: 0}, board.Tokens["alpha"].Position)
	assert.Equal(t, Position{Row: 6, Col: 6}, board.Tokens["bravo"].Position)
	assert.Equal(t, Position{Row: 0, Col: 6}, board.Tokens["charlie"].Position)
	assert.Equal(t, Position{Row: 6, Col: 0}, board.Tokens["delta"].Position)

	for _, tok := range board.Tokens {
		assert.Zero(t, tok.Score)
		assert.True(t, board.IsValidPosition(tok.Position))
	}
}

func TestOrderedTokensIsDeterministic(t *testing.T) {
	board := newTestBoard(t, 7, 7, "delta", "bravo", "alpha", "charlie")
	tokens := board.OrderedTokens()
	require.Len(t, tokens, 4)
	for i, want := range []PlayerID{"alpha", "bravo", "charlie", "delta"} {
		assert.Equal(t, want, tokens[i].PlayerID)
	}
}

func TestSeededConstructionIsReproducible(t *testing.T) {
	a, err := NewBoard("game-1", 7, 7, []PlayerID{"p1"}, random.NewSeeded(42))
	require.NoError(t, err)
	b, err := NewBoard("game-1", 7, 7, []PlayerID{"p1"}, random.NewSeeded(42))
	require.NoError(t, err)

	assert.Equal(t, a.Cells, b.Cells)
	assert.Equal(t, a.LooseTile, b.LooseTile)
}

func TestStageInsertionValidation(t *testing.T) {
	board := newTestBoard(t, 7, 5, "p1")

	// 7 wide: lanes at columns 1, 3, 5 -> guide indices 0..2 for N/S
	assert.Equal(t, 3, board.LaneCount(North))
	// 5 tall: lanes at rows 1, 3 -> guide indices 0..1 for E/W
	assert.Equal(t, 2, board.LaneCount(East))

	require.NoError(t, board.StageInsertion(North, 2))
	assert.Equal(t, &InsertSlot{Dir: North, GuideIndex: 2}, board.StagedSlot)

	assert.ErrorIs(t, board.StageInsertion(North, 3), ErrInvalidInsertSlot)
	assert.ErrorIs(t, board.StageInsertion(East, 2), ErrInvalidInsertSlot)
	assert.ErrorIs(t, board.StageInsertion(South, -1), ErrInvalidInsertSlot)

	board.ClearStagedInsertion()
	assert.Nil(t, board.StagedSlot)
}

func TestInsertFromNorthShiftsColumnSouth(t *testing.T) {
	board := newTestBoard(t, 7, 7, "p1")

	before := make([]Tile, board.Height())
	for row := 0; row < board.Height(); row++ {
		before[row] = board.Get(1, row)
	}
	oldLoose := board.LooseTile

	require.NoError(t, board.StageInsertion(North, 0))
	board.InsertLooseTile()

	// Old loose tile enters at the north edge of column 1
	assert.Equal(t, oldLoose, board.Get(1, 0))
	// Every other tile in the lane moved one cell south
	for row := 1; row < board.Height(); row++ {
		assert.Equal(t, before[row-1], board.Get(1, row), "row %d", row)
	}
	// The southmost tile of the lane was pushed off and is now loose
	assert.Equal(t, before[board.Height()-1], board.LooseTile)
	// The slot is consumed
	assert.Nil(t, board.StagedSlot)
}

func TestInsertFromEachEdge(t *testing.T) {
	tests := []struct {
		dir   Direction
		entry Position
		exit  Position
	}{
		{North, Position{Row: 0, Col: 3}, Position{Row: 6, Col: 3}},
		{South, Position{Row: 6, Col: 3}, Position{Row: 0, Col: 3}},
		{West, Position{Row: 3, Col: 0}, Position{Row: 3, Col: 6}},
		{East, Position{Row: 3, Col: 6}, Position{Row: 3, Col: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			board := newTestBoard(t, 7, 7, "p1")
			slot := InsertSlot{Dir: tt.dir, GuideIndex: 1}
			assert.Equal(t, tt.entry, board.InsertEntry(slot))
			assert.Equal(t, tt.exit, board.InsertExit(slot))

			oldLoose := board.LooseTile
			pushed := board.Cells[tt.exit.Row][tt.exit.Col]

			require.NoError(t, board.StageInsertion(tt.dir, 1))
			board.InsertLooseTile()

			assert.Equal(t, oldLoose, board.Cells[tt.entry.Row][tt.entry.Col])
			assert.Equal(t, pushed, board.LooseTile)
		})
	}
}

func TestInsertConservesTiles(t *testing.T) {
	board := newTestBoard(t, 7, 7, "p1")
	before := tileCensus(board)

	for _, dir := range Directions {
		for guide := 0; guide < board.LaneCount(dir); guide++ {
			require.NoError(t, board.StageInsertion(dir, guide))
			board.InsertLooseTile()
			assert.Equal(t, before, tileCensus(board), "%s guide %d", dir, guide)
		}
	}
}

func TestInsertNeverTouchesCorners(t *testing.T) {
	board := newTestBoard(t, 7, 5, "p1")
	w, h := board.Width(), board.Height()
	corners := []Position{
		{Row: 0, Col: 0}, {Row: 0, Col: w - 1},
		{Row: h - 1, Col: 0}, {Row: h - 1, Col: w - 1},
	}

	before := make([]Tile, len(corners))
	for i, pos := range corners {
		before[i] = board.Get(pos.Col, pos.Row)
	}

	for _, dir := range Directions {
		for guide := 0; guide < board.LaneCount(dir); guide++ {
			require.NoError(t, board.StageInsertion(dir, guide))
			board.InsertLooseTile()
		}
	}

	for i, pos := range corners {
		assert.Equal(t, before[i], board.Get(pos.Col, pos.Row), "corner %v", pos)
	}
}

func TestInsertWithoutStagedSlotIsNoOp(t *testing.T) {
	board := newTestBoard(t, 7, 7, "p1")
	cells := make([][]Tile, len(board.Cells))
	for i, row := range board.Cells {
		cells[i] = append([]Tile(nil), row...)
	}
	loose := board.LooseTile

	board.InsertLooseTile()

	assert.Equal(t, cells, board.Cells)
	assert.Equal(t, loose, board.LooseTile)
}

func TestRotateLooseTile(t *testing.T) {
	board := newTestBoard(t, 5, 5, "p1")
	orientation := board.LooseTile.Orientation

	board.RotateLooseTile()
	assert.Equal(t, orientation.Clockwise(), board.LooseTile.Orientation)

	board.RotateLooseTile()
	board.RotateLooseTile()
	board.RotateLooseTile()
	assert.Equal(t, orientation, board.LooseTile.Orientation)
}

func TestReachableIncludesStart(t *testing.T) {
	board := newTestBoard(t, 7, 7, "p1")
	for row := 0; row < board.Height(); row++ {
		for col := 0; col < board.Width(); col++ {
			from := Position{Row: row, Col: col}
			assert.True(t, board.ReachableCoords(from)[from], "from %v", from)
		}
	}
}

func TestReachableIsSymmetricClosure(t *testing.T) {
	// Reachability partitions the grid into connected components: every
	// member of a component must see exactly the same component
	board := newTestBoard(t, 7, 7, "p1")
	for row := 0; row < board.Height(); row++ {
		for col := 0; col < board.Width(); col++ {
			from := Position{Row: row, Col: col}
			component := board.ReachableCoords(from)
			for member := range component {
				assert.Equal(t, component, board.ReachableCoords(member),
					"component of %v seen from %v", from, member)
			}
		}
	}
}

func TestReachableIsolatedCorner(t *testing.T) {
	board := newTestBoard(t, 5, 5, "p1")

	// Corner/East tiles pass only east and south, so no tile answers its
	// west or north neighbor: nothing mutually connects anywhere
	for row := 0; row < board.Height(); row++ {
		for col := 0; col < board.Width(); col++ {
			if (row == 0 || row == board.Height()-1) && (col == 0 || col == board.Width()-1) {
				continue
			}
			board.Cells[row][col] = Tile{Shape: ShapeCorner, Orientation: East}
		}
	}

	reachable := board.ReachableCoords(Position{Row: 0, Col: 0})
	assert.Equal(t, map[Position]bool{{Row: 0, Col: 0}: true}, reachable)
}

func TestReachableRequiresMutualPassages(t *testing.T) {
	board := newTestBoard(t, 5, 5, "p1")

	// Isolate the top-left corner's neighborhood first
	board.Cells[1][0] = Tile{Shape: ShapeCorner, Orientation: East}
	board.Cells[1][1] = Tile{Shape: ShapeCorner, Orientation: East}
	board.Cells[0][2] = Tile{Shape: ShapeCorner, Orientation: East}

	// A straight tile east of the corner connects iff it runs east-west:
	// the corner's east passage needs the neighbor's west passage back
	board.Cells[0][1] = Tile{Shape: ShapeStraight, Orientation: East}
	assert.True(t, board.ReachableCoords(Position{Row: 0, Col: 0})[Position{Row: 0, Col: 1}])

	// Rotated 90 degrees it runs north-south: one-way facing is not enough
	board.Cells[0][1] = Tile{Shape: ShapeStraight, Orientation: North}
	assert.False(t, board.ReachableCoords(Position{Row: 0, Col: 0})[Position{Row: 0, Col: 1}])
}

func TestReachableFollowsOpenLane(t *testing.T) {
	board := newTestBoard(t, 5, 5, "p1")

	// Lay an east-west corridor across row 1
	for col := 0; col < board.Width(); col++ {
		board.Cells[1][col] = Tile{Shape: ShapeStraight, Orientation: East}
	}

	reachable := board.ReachableCoords(Position{Row: 1, Col: 0})
	for col := 0; col < board.Width(); col++ {
		assert.True(t, reachable[Position{Row: 1, Col: col}], "col %d", col)
	}
}

func TestBoardJSONRoundTrip(t *testing.T) {
	board := newTestBoard(t, 5, 5, "p1", "p2")
	require.NoError(t, board.StageInsertion(West, 1))
	target := PlayerID("p2")
	board.Cells[2][3].WhoseTarget = &target
	board.Tokens["p1"].Score = 2

	data, err := json.Marshal(board)
	require.NoError(t, err)

	var decoded Board
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, board.Cells, decoded.Cells)
	assert.Equal(t, board.LooseTile, decoded.LooseTile)
	assert.Equal(t, board.StagedSlot, decoded.StagedSlot)
	assert.Equal(t, board.Tokens, decoded.Tokens)
}
