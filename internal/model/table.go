package model

// Table is a record set ready for serialization.
type Table struct {
	// Header lists the column names, excluding the index column.
	Header []string

	// Rows holds one value slice per record, in Header order.
	Rows [][]string

	// Indexed adds a leading IndexColumn holding each row's 0-based position.
	Indexed bool
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// rower is implemented by every record type.
type rower interface {
	Row() []string
}

// NewTable builds a Table from records sharing a header.
func NewTable[T rower](header []string, records []T, indexed bool) *Table {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = r.Row()
	}
	return &Table{
		Header:  header,
		Rows:    rows,
		Indexed: indexed,
	}
}
