// Package querybuilder renders the small set of PostgreSQL statements the
// repositories need, numbering $n placeholders in the order values are bound.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

type statement struct {
	sql  strings.Builder
	args []any
}

func (s *statement) write(parts ...string) {
	for _, p := range parts {
		s.sql.WriteString(p)
	}
}

func (s *statement) bind(v any) {
	s.args = append(s.args, v)
	s.sql.WriteString("$")
	s.sql.WriteString(strconv.Itoa(len(s.args)))
}

// expr copies raw SQL, binding one argument per '?'. Extra '?' are kept.
func (s *statement) expr(raw string, args []any) {
	next := 0
	for i := 0; i < len(raw); i++ {
		if raw[i] == '?' && next < len(args) {
			s.bind(args[next])
			next++
			continue
		}
		s.sql.WriteByte(raw[i])
	}
}

func (s *statement) join(sep string, conds []Condition) {
	for i, c := range conds {
		if i > 0 {
			s.write(sep)
		}
		c(s)
	}
}

func (s *statement) where(conds []Condition) {
	if len(conds) == 0 {
		return
	}
	s.write(" WHERE ")
	s.join(" AND ", conds)
}

func (s *statement) list(keyword string, parts []string) {
	if len(parts) == 0 {
		return
	}
	s.write(" ", keyword, " ", strings.Join(parts, ", "))
}

func (s *statement) done() (string, []any, error) {
	return s.sql.String(), s.args, nil
}

// Condition renders one boolean SQL term.
type Condition func(*statement)

func Eq(column string, value any) Condition {
	return func(s *statement) {
		s.write(column, " = ")
		s.bind(value)
	}
}

// In renders column IN (...). An empty list matches nothing.
func In(column string, values []any) Condition {
	return func(s *statement) {
		if len(values) == 0 {
			s.write("1=0")
			return
		}
		s.write(column, " IN (")
		for i, v := range values {
			if i > 0 {
				s.write(", ")
			}
			s.bind(v)
		}
		s.write(")")
	}
}

func InStrings(column string, values []string) Condition {
	items := make([]any, len(values))
	for i, v := range values {
		items[i] = v
	}
	return In(column, items)
}

func IsNull(column string) Condition {
	return func(s *statement) { s.write(column, " IS NULL") }
}

// Expr is a raw term with '?' placeholders, e.g. Expr("match_num >= ?", n).
func Expr(raw string, args ...any) Condition {
	return func(s *statement) { s.expr(raw, args) }
}

func Or(conds ...Condition) Condition {
	return group(" OR ", conds)
}

func And(conds ...Condition) Condition {
	return group(" AND ", conds)
}

func group(sep string, conds []Condition) Condition {
	return func(s *statement) {
		if len(conds) == 0 {
			s.write("1=0")
			return
		}
		s.write("(")
		s.join(sep, conds)
		s.write(")")
	}
}

type SelectBuilder struct {
	columns   []string
	table     string
	joins     []string
	where     []Condition
	groupBy   []string
	orderBy   []string
	limit     int
	forUpdate bool
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

// Join appends a raw join clause, e.g. "JOIN season s ON s.id = m.season_id".
func (b *SelectBuilder) Join(clause string) *SelectBuilder {
	b.joins = append(b.joins, strings.TrimSpace(clause))
	return b
}

// ForUpdate row-locks the selected rows until the surrounding transaction ends.
func (b *SelectBuilder) ForUpdate() *SelectBuilder {
	b.forUpdate = true
	return b
}

func (b *SelectBuilder) Where(conds ...Condition) *SelectBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) GroupBy(parts ...string) *SelectBuilder {
	b.groupBy = append(b.groupBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("select columns are required")
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("select table is required")
	}

	var s statement
	s.write("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	for _, j := range b.joins {
		s.write(" ", j)
	}
	s.where(b.where)
	s.list("GROUP BY", b.groupBy)
	s.list("ORDER BY", b.orderBy)
	if b.limit > 0 {
		s.write(" LIMIT ", strconv.Itoa(b.limit))
	}
	if b.forUpdate {
		s.write(" FOR UPDATE")
	}
	return s.done()
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

// Values adds one row; call it repeatedly for a multi-row insert.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix is appended verbatim, typically ON CONFLICT or RETURNING.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("insert table is required")
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("insert columns are required")
	case len(b.rows) == 0:
		return "", nil, fmt.Errorf("insert values are required")
	}

	var s statement
	s.write("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", i, len(row), len(b.columns))
		}
		if i > 0 {
			s.write(", ")
		}
		s.write("(")
		for j, v := range row {
			if j > 0 {
				s.write(", ")
			}
			s.bind(v)
		}
		s.write(")")
	}
	if b.suffix != "" {
		s.write(" ", b.suffix)
	}
	return s.done()
}

type UpdateBuilder struct {
	table  string
	sets   []Condition
	where  []Condition
	suffix string
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, Eq(column, value))
	return b
}

// SetExpr assigns a raw expression, e.g. SetExpr("updated_at", "now()").
func (b *UpdateBuilder) SetExpr(column, raw string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, func(s *statement) {
		s.write(column, " = ")
		s.expr(raw, args)
	})
	return b
}

// Increment emits "column = column + $n". Zero deltas are skipped so a full
// counter set can be passed without filtering.
func (b *UpdateBuilder) Increment(column string, delta int) *UpdateBuilder {
	if delta == 0 {
		return b
	}
	return b.SetExpr(column, column+" + ?", delta)
}

func (b *UpdateBuilder) HasSets() bool {
	return len(b.sets) > 0
}

func (b *UpdateBuilder) Where(conds ...Condition) *UpdateBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *UpdateBuilder) Suffix(sql string) *UpdateBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("update table is required")
	case len(b.sets) == 0:
		return "", nil, fmt.Errorf("update sets are required")
	}

	var s statement
	s.write("UPDATE ", b.table, " SET ")
	s.join(", ", b.sets)
	s.where(b.where)
	if b.suffix != "" {
		s.write(" ", b.suffix)
	}
	return s.done()
}
