package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ozscout/scoutql/internal/model"
)

const testCSV = `name,team,position,age,disposals,goals,clearances,season
Alice Strong,richmond,midfielder,21,28.5,0.8,6.2,2025
Bob Keel,richmond,key_forward,29,14.1,2.6,0.9,2025
Cal Swift,collingwood,midfielder,22,25.0,0.5,5.1,2025
Dan Oak,collingwood,defender,31,18.3,0.1,1.2,2025
Eve Hart,carlton,midfielder,26,30.2,1.1,7.4,2025
Alice Strong,richmond,midfielder,20,24.0,0.6,5.0,2024
`

func openWithData(t *testing.T) *DB {
	t.Helper()
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "players.csv")
	if err := os.WriteFile(csvPath, []byte(testCSV), 0644); err != nil {
		t.Fatal(err)
	}

	db, err := Open(filepath.Join(dir, "players.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	n, err := db.ImportCSV(csvPath)
	if err != nil {
		t.Fatalf("import csv: %v", err)
	}
	if n != 6 {
		t.Fatalf("expected 6 imported rows, got %d", n)
	}
	return db
}

func filterListInterp(constraints ...model.Constraint) *model.Interpretation {
	leaves := make([]*model.FilterNode, 0, len(constraints))
	for _, c := range constraints {
		leaves = append(leaves, model.Leaf(c))
	}
	return &model.Interpretation{
		Intent:      model.Intent{Kind: model.IntentFilterList},
		Constraints: constraints,
		Tree: &model.FilterTree{
			Root: model.And(leaves...),
			Meta: model.TreeMeta{Intent: model.IntentFilterList},
		},
	}
}

func TestExecute_FilterList(t *testing.T) {
	db := openWithData(t)

	interp := filterListInterp(
		model.Constraint{Field: "age", Operator: model.OpLt, Operands: []float64{23}},
		model.Constraint{Field: "position", Operator: model.OpEq, Values: []string{"midfielder"}},
	)

	table, err := db.Execute(interp)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("expected 3 young midfielders, got %d rows", len(table.Rows))
	}
	// Default ordering is by name
	if table.Rows[0][0] != "Alice Strong" {
		t.Errorf("expected Alice Strong first, got %s", table.Rows[0][0])
	}
}

func TestExecute_Between(t *testing.T) {
	db := openWithData(t)

	interp := filterListInterp(model.Constraint{
		Field: "age", Operator: model.OpBetween,
		Operands:     []float64{21, 26},
		LowInclusive: true, HighInclusive: true,
	})

	table, err := db.Execute(interp)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(table.Rows) != 3 {
		t.Errorf("expected 3 players aged 21-26, got %d", len(table.Rows))
	}
}

func TestExecute_BetweenExclusive(t *testing.T) {
	db := openWithData(t)

	interp := filterListInterp(model.Constraint{
		Field: "age", Operator: model.OpBetween,
		Operands: []float64{21, 26},
	})

	table, err := db.Execute(interp)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	// Only Cal Swift (22) sits strictly inside (21, 26)
	if len(table.Rows) != 1 || table.Rows[0][0] != "Cal Swift" {
		t.Errorf("expected only Cal Swift, got %v", table.Rows)
	}
}

func TestExecute_InSet(t *testing.T) {
	db := openWithData(t)

	interp := filterListInterp(model.Constraint{
		Field: "team", Operator: model.OpInSet,
		Values: []string{"richmond", "carlton"},
	})

	table, err := db.Execute(interp)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(table.Rows) != 4 {
		t.Errorf("expected 4 richmond/carlton players, got %d", len(table.Rows))
	}
}

func TestExecute_TopN(t *testing.T) {
	db := openWithData(t)

	interp := &model.Interpretation{
		Intent: model.Intent{Kind: model.IntentTopN, N: 2, RankingField: "disposals"},
		Tree: &model.FilterTree{
			Meta: model.TreeMeta{
				Intent:       model.IntentTopN,
				RankingField: "disposals",
				Limit:        2,
			},
		},
	}

	table, err := db.Execute(interp)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows for top 2, got %d", len(table.Rows))
	}
	if table.Rows[0][0] != "Eve Hart" {
		t.Errorf("expected top disposal winner Eve Hart, got %s", table.Rows[0][0])
	}
}

func TestExecute_CompareSelectsTeams(t *testing.T) {
	db := openWithData(t)

	interp := &model.Interpretation{
		Intent: model.Intent{Kind: model.IntentCompare, Entities: []string{"richmond", "collingwood"}},
		Tree: &model.FilterTree{
			Meta: model.TreeMeta{
				Intent:   model.IntentCompare,
				Entities: []string{"richmond", "collingwood"},
			},
		},
	}

	table, err := db.Execute(interp)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(table.Rows) != 5 {
		t.Errorf("expected 5 players across both teams, got %d", len(table.Rows))
	}
	for _, row := range table.Rows {
		if row[1] != "richmond" && row[1] != "collingwood" {
			t.Errorf("unexpected team %s in comparison", row[1])
		}
	}
}

func TestExecute_TrendAggregatesSeasons(t *testing.T) {
	db := openWithData(t)

	interp := &model.Interpretation{
		Intent: model.Intent{Kind: model.IntentTrend, Entity: "richmond", TimeDim: "season"},
		Tree: &model.FilterTree{
			Meta: model.TreeMeta{
				Intent:       model.IntentTrend,
				Entities:     []string{"richmond"},
				RankingField: "disposals",
				TimeDim:      "season",
			},
		},
	}

	table, err := db.Execute(interp)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 seasons, got %d", len(table.Rows))
	}
	if table.Rows[0][0] != "2024" || table.Rows[1][0] != "2025" {
		t.Errorf("expected seasons in ascending order, got %v", table.Rows)
	}
}

func TestExecute_TrendPositionSubject(t *testing.T) {
	db := openWithData(t)

	interp := &model.Interpretation{
		Intent: model.Intent{Kind: model.IntentTrend, Entity: "midfielder", TimeDim: "season"},
		Tree: &model.FilterTree{
			Meta: model.TreeMeta{
				Intent:       model.IntentTrend,
				Entities:     []string{"midfielder"},
				EntityField:  "position",
				RankingField: "disposals",
				TimeDim:      "season",
			},
		},
	}

	table, err := db.Execute(interp)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	// Midfielders exist in both seasons; a team-column filter would
	// return nothing.
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 seasons of midfielder averages, got %d", len(table.Rows))
	}
	if table.Rows[0][2] != "1" || table.Rows[1][2] != "3" {
		t.Errorf("unexpected per-season player counts: %v", table.Rows)
	}
}

func TestExecute_RankingHintOrders(t *testing.T) {
	db := openWithData(t)

	interp := filterListInterp(model.Constraint{
		Field: "position", Operator: model.OpEq, Values: []string{"midfielder"},
	})
	interp.Tree.Meta.Hints = []model.RankingHint{{Field: "clearances", Descending: true}}

	table, err := db.Execute(interp)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(table.Rows) == 0 {
		t.Fatal("expected rows")
	}
	if table.Rows[0][0] != "Eve Hart" {
		t.Errorf("expected highest clearances first, got %s", table.Rows[0][0])
	}
}

func TestExecute_Errors(t *testing.T) {
	db := openWithData(t)

	if _, err := db.Execute(nil); err == nil {
		t.Error("expected error for nil interpretation")
	}

	if _, err := db.Execute(&model.Interpretation{Unsatisfiable: true, Tree: &model.FilterTree{}}); err == nil {
		t.Error("expected error for unsatisfiable interpretation")
	}

	bad := filterListInterp(model.Constraint{
		Field: "charisma", Operator: model.OpGt, Operands: []float64{1},
	})
	if _, err := db.Execute(bad); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestImportCSV_MissingColumn(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "bad.csv")
	if err := os.WriteFile(csvPath, []byte("name,age\nAlice,21\n"), 0644); err != nil {
		t.Fatal(err)
	}

	db, err := Open(filepath.Join(dir, "players.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, err := db.ImportCSV(csvPath); err == nil {
		t.Error("expected error for csv missing team column")
	}
}
