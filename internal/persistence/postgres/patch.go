package postgres

import (
	"fmt"
	"strings"
)

// updateBuilder assembles a parameterized UPDATE statement from whichever
// patch fields are present. Callers must add at least one column; the domain
// layer rejects empty patches before a builder is ever constructed.
type updateBuilder struct {
	table   string
	columns []string
	args    []interface{}
}

func newUpdateBuilder(table string) *updateBuilder {
	return &updateBuilder{table: table}
}

// Set stages one column assignment.
func (b *updateBuilder) Set(column string, value interface{}) {
	b.columns = append(b.columns, column)
	b.args = append(b.args, value)
}

// Empty reports whether no assignments were staged.
func (b *updateBuilder) Empty() bool {
	return len(b.columns) == 0
}

// Build emits the statement and its argument list, with the row ID appended
// as the final placeholder.
func (b *updateBuilder) Build(idColumn, id string) (string, []interface{}) {
	assignments := make([]string, len(b.columns))
	for i, column := range b.columns {
		assignments[i] = fmt.Sprintf("%s = $%d", column, i+1)
	}
	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		b.table, strings.Join(assignments, ", "), idColumn, len(b.columns)+1)
	return stmt, append(b.args, id)
}
