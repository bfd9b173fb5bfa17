package t2048

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

// firstCellRand always picks the first candidate cell and a fixed spawn roll.
type firstCellRand struct {
	roll float64
}

func (r firstCellRand) Intn(int) int {
	return 0
}

func (r firstCellRand) Float64() float64 {
	return r.roll
}

// engineWithGrid returns an engine whose initial state is rows.
func engineWithGrid(t *testing.T, rows [][]int, rng Rand) *Engine {
	t.Helper()
	e := NewEngine(DefaultRules(), rng)
	if err := e.Reset(len(rows), 0); err != nil {
		t.Fatalf("Reset(%d): %v", len(rows), err)
	}
	e.grid = mustGrid(t, rows)
	e.maxTile = e.grid.MaxTile()
	e.history.Clear()
	e.saveState()
	return e
}

func TestResetPlacesStartTiles(t *testing.T) {
	for _, m := range Modes {
		t.Run(string(m.Mode), func(t *testing.T) {
			e := NewEngine(DefaultRules(), rand.New(rand.NewSource(1)))
			if err := e.ResetMode(m.Mode); err != nil {
				t.Fatalf("ResetMode: %v", err)
			}

			if e.Size() != m.Size {
				t.Errorf("Size() = %d, want %d", e.Size(), m.Size)
			}
			if got := e.Grid().TileCount(); got != m.StartTiles {
				t.Errorf("TileCount() = %d, want %d", got, m.StartTiles)
			}
			if e.Score() != 0 || e.MoveCount() != 0 || e.GameOver() || e.Won() {
				t.Error("Reset left stale counters or flags")
			}
			if e.HistoryLen() != 1 || e.CanUndo() {
				t.Errorf("HistoryLen() = %d, want only the initial snapshot", e.HistoryLen())
			}
		})
	}
}

func TestResetInvalidSize(t *testing.T) {
	e := NewEngine(DefaultRules(), firstCellRand{roll: 0.5})
	for _, size := range []int{-1, 0, 1, 3, 7} {
		if err := e.Reset(size, 2); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Reset(%d) error = %v, want ErrInvalidArgument", size, err)
		}
	}
	if err := e.Reset(4, -1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Reset(4, -1) error = %v, want ErrInvalidArgument", err)
	}
	if err := e.ResetMode("8x8"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ResetMode(8x8) error = %v, want ErrInvalidArgument", err)
	}
}

func TestResetMoreTilesThanCells(t *testing.T) {
	e := NewEngine(DefaultRules(), rand.New(rand.NewSource(3)))
	if err := e.Reset(4, 20); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if e.Grid().HasEmptyCell() {
		t.Error("grid should be full")
	}
}

func TestPlaceRandomTile(t *testing.T) {
	tests := []struct {
		name string
		roll float64
		want int
	}{
		{"two", 0.5, 2},
		{"four", 0.05, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := engineWithGrid(t, [][]int{
				{2, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			}, firstCellRand{roll: tt.roll})

			if !e.PlaceRandomTile() {
				t.Fatal("PlaceRandomTile() = false on a non-full grid")
			}
			if got := e.Cell(0, 1); got != tt.want {
				t.Errorf("spawned %d at (0,1), want %d", got, tt.want)
			}
		})
	}
}

func TestPlaceRandomTileFullGrid(t *testing.T) {
	rows := [][]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}
	e := engineWithGrid(t, rows, firstCellRand{roll: 0.5})
	if e.PlaceRandomTile() {
		t.Error("PlaceRandomTile() = true on a full grid")
	}
	if !e.Grid().Equal(mustGrid(t, rows)) {
		t.Error("full grid changed")
	}
}

func TestApplyMoveMergeLeft(t *testing.T) {
	e := engineWithGrid(t, [][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, firstCellRand{roll: 0.5})

	res, err := e.ApplyMove(DirLeft)
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}

	if !res.Moved || res.ScoreGained != 4 {
		t.Errorf("result = %+v, want moved with 4 points", res)
	}
	if e.Cell(0, 0) != 4 {
		t.Errorf("Cell(0,0) = %d, want 4", e.Cell(0, 0))
	}
	if !res.Spawned || res.SpawnCell != (Cell{Row: 0, Col: 1}) || e.Cell(0, 1) != 2 {
		t.Errorf("spawn = %+v value %d, want a 2 at (0,1)", res.SpawnCell, e.Cell(0, 1))
	}
	if e.Score() != 4 || e.MoveCount() != 1 || e.MaxTile() != 4 {
		t.Errorf("score=%d moves=%d max=%d, want 4/1/4", e.Score(), e.MoveCount(), e.MaxTile())
	}
	if e.HistoryLen() != 2 {
		t.Errorf("HistoryLen() = %d, want 2", e.HistoryLen())
	}
}

func TestApplyMoveNoEffect(t *testing.T) {
	e := engineWithGrid(t, [][]int{
		{2, 4, 0, 0},
		{8, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, firstCellRand{roll: 0.5})
	before := e.Snapshot()

	res, err := e.ApplyMove(DirLeft)
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if res != (MoveResult{}) {
		t.Errorf("result = %+v, want zero", res)
	}

	after := e.Snapshot()
	if !after.Grid.Equal(before.Grid) || after.Score != before.Score ||
		after.Moves != before.Moves || e.HistoryLen() != 1 {
		t.Error("no-op move changed state")
	}
}

func TestApplyMoveInvalidDirection(t *testing.T) {
	e := engineWithGrid(t, [][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, firstCellRand{roll: 0.5})

	if _, err := e.ApplyMove(Direction(9)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ApplyMove(9) error = %v, want ErrInvalidArgument", err)
	}
	if e.Cell(0, 1) != 2 {
		t.Error("invalid move changed the grid")
	}
}

func TestWinOnMerge(t *testing.T) {
	e := engineWithGrid(t, [][]int{
		{1024, 1024, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, firstCellRand{roll: 0.5})

	res, err := e.ApplyMove(DirLeft)
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if !res.Won || !e.Won() {
		t.Error("merging into 2048 should set won")
	}
	if e.Cell(0, 0) != 2048 || e.Score() != 2048 {
		t.Errorf("Cell(0,0)=%d score=%d, want 2048/2048", e.Cell(0, 0), e.Score())
	}
	if e.GameOver() {
		t.Error("win must not end the game")
	}

	// Play continues; the win is only reported once.
	res, err = e.ApplyMove(DirRight)
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if !res.Moved || res.Won || !e.Won() {
		t.Errorf("result after win = %+v, won=%v", res, e.Won())
	}
}

// lastMoveRows ends the game on a left move: the spawned 2 fills the
// only gap and leaves no adjacent pair.
var lastMoveRows = [][]int{
	{2, 4, 2, 4},
	{4, 2, 4, 2},
	{2, 4, 2, 4},
	{0, 8, 16, 32},
}

func TestGameOverStopsMoves(t *testing.T) {
	e := engineWithGrid(t, lastMoveRows, firstCellRand{roll: 0.5})

	res, err := e.ApplyMove(DirLeft)
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if !res.GameOver || !e.GameOver() {
		t.Fatalf("GameOver() = false, grid:\n%v", e.Grid())
	}

	snap := e.Snapshot()
	if snap.State != StateGameOver {
		t.Errorf("Snapshot().State = %s, want %s", snap.State, StateGameOver)
	}

	for _, dir := range Directions {
		res, err := e.ApplyMove(dir)
		if err != nil {
			t.Fatalf("ApplyMove(%s): %v", dir, err)
		}
		if res.Moved {
			t.Errorf("ApplyMove(%s) moved after game over", dir)
		}
	}
	if e.MoveCount() != 1 {
		t.Errorf("MoveCount() = %d, want 1", e.MoveCount())
	}
}

func TestUndoClearsFlags(t *testing.T) {
	e := engineWithGrid(t, lastMoveRows, firstCellRand{roll: 0.5})
	if _, err := e.ApplyMove(DirLeft); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if !e.GameOver() {
		t.Fatal("expected game over")
	}

	if !e.Undo() {
		t.Fatal("Undo() = false")
	}
	if e.GameOver() || e.Won() {
		t.Error("Undo should clear terminal flags")
	}
	if !e.Grid().Equal(mustGrid(t, lastMoveRows)) {
		t.Errorf("Undo restored\n%v", e.Grid())
	}
	if e.Undo() {
		t.Error("Undo() past the initial state should fail")
	}
}

func TestUndoRoundTrip(t *testing.T) {
	rows := [][]int{
		{2, 0, 2, 4},
		{0, 4, 0, 4},
		{8, 8, 2, 0},
		{0, 2, 0, 2},
	}

	for _, dir := range Directions {
		t.Run(dir.String(), func(t *testing.T) {
			e := engineWithGrid(t, rows, rand.New(rand.NewSource(7)))
			e.score = 100
			e.saveState()

			res, err := e.ApplyMove(dir)
			if err != nil {
				t.Fatalf("ApplyMove: %v", err)
			}
			if !res.Moved {
				t.Skipf("%s does not change this grid", dir)
			}

			if !e.Undo() {
				t.Fatal("Undo() = false")
			}
			if !e.Grid().Equal(mustGrid(t, rows)) {
				t.Errorf("grid after undo:\n%v", e.Grid())
			}
			if e.Score() != 100 || e.MoveCount() != 0 {
				t.Errorf("score=%d moves=%d after undo, want 100/0", e.Score(), e.MoveCount())
			}
		})
	}
}

func TestUndoRestoresElapsed(t *testing.T) {
	e := engineWithGrid(t, [][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, firstCellRand{roll: 0.5})

	e.SetElapsed(3 * time.Second)
	e.saveState()
	e.SetElapsed(5 * time.Second)
	if _, err := e.ApplyMove(DirLeft); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}

	e.Undo()
	if e.Elapsed() != 3*time.Second {
		t.Errorf("Elapsed() = %v, want 3s", e.Elapsed())
	}
}

func TestUndoHistoryCapacity(t *testing.T) {
	e := NewEngine(DefaultRules(), rand.New(rand.NewSource(11)))
	if err := e.Reset(6, 4); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	moves := 0
	for i := 0; moves < 15 && i < 1000; i++ {
		res, err := e.ApplyMove(Directions[i%len(Directions)])
		if err != nil {
			t.Fatalf("ApplyMove: %v", err)
		}
		if res.Moved {
			moves++
		}
	}
	if moves < 15 {
		t.Fatalf("only %d moves made", moves)
	}

	if e.HistoryLen() != DefaultHistoryCapacity {
		t.Errorf("HistoryLen() = %d, want %d", e.HistoryLen(), DefaultHistoryCapacity)
	}

	undos := 0
	for e.Undo() {
		undos++
	}
	if undos != DefaultHistoryCapacity-1 {
		t.Errorf("undid %d moves, want %d", undos, DefaultHistoryCapacity-1)
	}
	if e.MoveCount() != 15-undos {
		t.Errorf("MoveCount() = %d, want %d", e.MoveCount(), 15-undos)
	}
}

func TestBestScore(t *testing.T) {
	e := engineWithGrid(t, [][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, firstCellRand{roll: 0.5})

	e.SetBestScore(2)
	if _, err := e.ApplyMove(DirLeft); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if e.BestScore() != 4 {
		t.Errorf("BestScore() = %d, want 4", e.BestScore())
	}

	e.SetBestScore(1000)
	e.Undo()
	if e.BestScore() != 1000 {
		t.Errorf("BestScore() = %d after undo, want 1000", e.BestScore())
	}
}

func TestDeterministicSeed(t *testing.T) {
	play := func() Grid {
		e := NewEngine(DefaultRules(), rand.New(rand.NewSource(12345)))
		if err := e.Reset(4, 2); err != nil {
			t.Fatalf("Reset: %v", err)
		}
		for i := range 40 {
			if _, err := e.ApplyMove(Directions[i%len(Directions)]); err != nil {
				t.Fatalf("ApplyMove: %v", err)
			}
		}
		return e.Grid()
	}

	if a, b := play(), play(); !a.Equal(b) {
		t.Errorf("same seed produced different grids:\n%v\n%v", a, b)
	}
}

// TestRandomPlayInvariants drives many random games and checks the rules
// that must hold after every move.
func TestRandomPlayInvariants(t *testing.T) {
	for _, size := range []int{4, 5, 6} {
		for seed := int64(1); seed <= 5; seed++ {
			rng := rand.New(rand.NewSource(seed * 31))
			e := NewEngine(DefaultRules(), rng)
			if err := e.Reset(size, 2); err != nil {
				t.Fatalf("Reset: %v", err)
			}

			for step := 0; step < 400 && !e.GameOver(); step++ {
				before := e.Grid()
				score := e.Score()
				dir := Directions[rng.Intn(len(Directions))]

				res, err := e.ApplyMove(dir)
				if err != nil {
					t.Fatalf("ApplyMove: %v", err)
				}
				after := e.Grid()

				if !after.Valid() {
					t.Fatalf("size %d seed %d: invalid tile in\n%v", size, seed, after)
				}
				if after.TileCount() > before.TileCount()+1 {
					t.Fatalf("size %d seed %d: tile count grew from %d to %d",
						size, seed, before.TileCount(), after.TileCount())
				}
				if e.Score() != score+res.ScoreGained {
					t.Fatalf("score %d, want %d", e.Score(), score+res.ScoreGained)
				}
				if !res.Moved && !after.Equal(before) {
					t.Fatalf("unmoved result changed the grid")
				}
				if e.MaxTile() != after.MaxTile() {
					t.Fatalf("MaxTile() = %d, grid max %d", e.MaxTile(), after.MaxTile())
				}
				if e.GameOver() != IsGameOver(after) {
					t.Fatalf("GameOver() = %v, grid says %v", e.GameOver(), IsGameOver(after))
				}
			}
		}
	}
}
