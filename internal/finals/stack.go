package finals

// SourceColumn names the column added by Stack
const SourceColumn = "__source_file"

// Stack concatenates tables into one. The header is the union of the input
// headers in first-seen order followed by SourceColumn; cells a table does
// not have are left blank. Nil tables are ignored.
func Stack(tables []*Table) *Table {
	index := make(map[string]int)
	var header []string
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, name := range t.Header {
			if _, ok := index[name]; ok {
				continue
			}
			index[name] = len(header)
			header = append(header, name)
		}
	}

	width := len(header) + 1
	out := &Table{Header: append(header, SourceColumn)}
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, row := range t.Rows {
			stacked := make([]string, width)
			seen := make(map[string]bool, len(t.Header))
			for i, name := range t.Header {
				if seen[name] {
					continue
				}
				seen[name] = true
				stacked[index[name]] = t.Cell(row, i)
			}
			stacked[width-1] = t.Name
			out.Rows = append(out.Rows, stacked)
		}
	}
	return out
}
