package dataset

import (
	"fmt"
	"strings"

	"github.com/ozscout/scoutql/internal/model"
)

// Table is a render-ready result set
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// validFields whitelists every column a filter tree may reference; fields
// outside it fail the execution rather than reaching the SQL text.
var validFields = map[string]bool{
	"team": true, "position": true, "league": true, "season": true,
	"age": true, "disposals": true, "kicks": true, "handballs": true,
	"marks": true, "tackles": true, "goals": true,
	"contested_possessions": true, "clearances": true, "goal_accuracy": true,
}

// Execute runs an accepted interpretation's filter tree against the
// players table. The predicate becomes a WHERE clause; the tree metadata
// supplies selection, ordering, and limits. Ranking hints only ever affect
// ORDER BY, never row filtering.
func (db *DB) Execute(interp *model.Interpretation) (*Table, error) {
	if interp == nil || interp.Tree == nil {
		return nil, fmt.Errorf("no filter tree to execute")
	}
	if interp.Unsatisfiable {
		return nil, fmt.Errorf("interpretation is unsatisfiable")
	}

	meta := interp.Tree.Meta
	if meta.Intent == model.IntentTrend {
		return db.executeTrend(interp)
	}

	where, args, err := whereClause(interp.Tree, meta)
	if err != nil {
		return nil, err
	}

	columns := selectColumns(interp)
	query := fmt.Sprintf("SELECT %s FROM players", strings.Join(columns, ", "))
	if where != "" {
		query += " WHERE " + where
	}
	query += orderClause(meta)
	if meta.Intent == model.IntentTopN && meta.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", meta.Limit)
	}

	return db.queryTable(query, args, columns)
}

// executeTrend aggregates the ranking statistic per season
func (db *DB) executeTrend(interp *model.Interpretation) (*Table, error) {
	meta := interp.Tree.Meta
	stat := meta.RankingField
	if stat == "" && len(meta.Hints) > 0 {
		stat = meta.Hints[0].Field
	}
	if stat == "" {
		stat = "disposals"
	}
	if !validFields[stat] {
		return nil, fmt.Errorf("unknown statistic %q", stat)
	}

	where, args, err := whereClause(interp.Tree, meta)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT season, ROUND(AVG(%s), 2), COUNT(*) FROM players", stat)
	if where != "" {
		query += " WHERE " + where
	}
	query += " GROUP BY season ORDER BY season"

	return db.queryTable(query, args, []string{"season", "avg_" + stat, "players"})
}

func (db *DB) queryTable(query string, args []any, columns []string) (*Table, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("execute filter: %w", err)
	}
	defer rows.Close()

	table := &Table{Columns: columns}
	values := make([]any, len(columns))
	for i := range values {
		var s string
		values[i] = &s
	}
	for rows.Next() {
		if err := rows.Scan(values...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row := make([]string, len(columns))
		for i := range values {
			row[i] = *(values[i].(*string))
		}
		table.Rows = append(table.Rows, row)
	}
	return table, rows.Err()
}

// selectColumns returns the fixed identity columns plus any statistic the
// interpretation mentions.
func selectColumns(interp *model.Interpretation) []string {
	columns := []string{"name", "team", "position", "age"}
	seen := map[string]bool{"name": true, "team": true, "position": true, "age": true}
	add := func(field string) {
		if field != "" && validFields[field] && !seen[field] {
			seen[field] = true
			columns = append(columns, field)
		}
	}
	add(interp.Tree.Meta.RankingField)
	for _, h := range interp.Tree.Meta.Hints {
		add(h.Field)
	}
	for _, c := range interp.Constraints {
		add(c.Field)
	}
	return columns
}

// whereClause renders the boolean predicate plus the subject-entity
// selection for lookup/compare intents.
func whereClause(tree *model.FilterTree, meta model.TreeMeta) (string, []any, error) {
	var parts []string
	var args []any

	if tree.Root != nil {
		clause, rootArgs, err := renderNode(tree.Root)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, clause)
		args = append(args, rootArgs...)
	}

	if len(meta.Entities) > 0 {
		field := meta.EntityField
		if field == "" || !validFields[field] {
			field = "team"
		}
		if len(meta.Entities) == 1 {
			parts = append(parts, field+" = ?")
			args = append(args, meta.Entities[0])
		} else {
			placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(meta.Entities)), ", ")
			parts = append(parts, fmt.Sprintf("%s IN (%s)", field, placeholders))
			for _, e := range meta.Entities {
				args = append(args, e)
			}
		}
	}

	return strings.Join(parts, " AND "), args, nil
}

func renderNode(n *model.FilterNode) (string, []any, error) {
	switch n.Kind {
	case model.NodeLeaf:
		return renderConstraint(n.Constraint)
	case model.NodeNot:
		clause, args, err := renderNode(n.Children[0])
		if err != nil {
			return "", nil, err
		}
		return "NOT (" + clause + ")", args, nil
	case model.NodeAnd, model.NodeOr:
		joiner := " AND "
		if n.Kind == model.NodeOr {
			joiner = " OR "
		}
		var clauses []string
		var args []any
		for _, child := range n.Children {
			clause, childArgs, err := renderNode(child)
			if err != nil {
				return "", nil, err
			}
			clauses = append(clauses, clause)
			args = append(args, childArgs...)
		}
		return "(" + strings.Join(clauses, joiner) + ")", args, nil
	}
	return "", nil, fmt.Errorf("unknown node kind %q", n.Kind)
}

func renderConstraint(c *model.Constraint) (string, []any, error) {
	if !validFields[c.Field] {
		return "", nil, fmt.Errorf("unknown field %q", c.Field)
	}

	if c.IsCategorical() {
		if len(c.Values) == 1 {
			return c.Field + " = ?", []any{c.Values[0]}, nil
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(c.Values)), ", ")
		args := make([]any, len(c.Values))
		for i, v := range c.Values {
			args[i] = v
		}
		return fmt.Sprintf("%s IN (%s)", c.Field, placeholders), args, nil
	}

	switch c.Operator {
	case model.OpEq:
		return c.Field + " = ?", []any{c.Operands[0]}, nil
	case model.OpLt:
		return c.Field + " < ?", []any{c.Operands[0]}, nil
	case model.OpLte:
		return c.Field + " <= ?", []any{c.Operands[0]}, nil
	case model.OpGt:
		return c.Field + " > ?", []any{c.Operands[0]}, nil
	case model.OpGte:
		return c.Field + " >= ?", []any{c.Operands[0]}, nil
	case model.OpBetween:
		low, high := ">=", "<="
		if !c.LowInclusive {
			low = ">"
		}
		if !c.HighInclusive {
			high = "<"
		}
		return fmt.Sprintf("(%s %s ? AND %s %s ?)", c.Field, low, c.Field, high),
			[]any{c.Operands[0], c.Operands[1]}, nil
	}
	return "", nil, fmt.Errorf("unknown operator %q", c.Operator)
}

// orderClause picks the ordering: explicit ranking field first, then
// ranking hints, then a stable name ordering.
func orderClause(meta model.TreeMeta) string {
	if meta.Intent == model.IntentTopN && meta.RankingField != "" && validFields[meta.RankingField] {
		return fmt.Sprintf(" ORDER BY %s DESC", meta.RankingField)
	}
	for _, h := range meta.Hints {
		if !validFields[h.Field] {
			continue
		}
		dir := "DESC"
		if !h.Descending {
			dir = "ASC"
		}
		return fmt.Sprintf(" ORDER BY %s %s", h.Field, dir)
	}
	if meta.Intent == model.IntentCompare {
		return " ORDER BY team, name"
	}
	return " ORDER BY name"
}
