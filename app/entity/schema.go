package entity

// ResultSet is the generic shape returned for ad-hoc and introspection
// queries. Columns keeps the driver's column order; each row maps column name
// to a JSON-friendly value.
type ResultSet struct {
	Columns []string
	Rows    []map[string]any
}

func (r *ResultSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

type ExecResult struct {
	LastInsertID int64
	RowsAffected int64
}

type TableInfo struct {
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
}

type ColumnInfo struct {
	Column   string `json:"column_name"`
	DataType string `json:"data_type"`
	Nullable string `json:"is_nullable"`
	Key      string `json:"column_key"`
}
