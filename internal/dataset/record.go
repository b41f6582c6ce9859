package dataset

// Record is one data row: an ordered mapping from column name to raw string value.
type Record struct {
	cols []string
	vals map[string]string
}

// NewRecord builds a record from parallel column and value slices. Missing values
// become empty strings. A repeated column name keeps its first position and its
// last value.
func NewRecord(cols, vals []string) Record {
	r := Record{cols: make([]string, 0, len(cols)), vals: make(map[string]string, len(cols))}
	for i, c := range cols {
		v := ""
		if i < len(vals) {
			v = vals[i]
		}
		if _, dup := r.vals[c]; !dup {
			r.cols = append(r.cols, c)
		}
		r.vals[c] = v
	}
	return r
}

// Columns returns the record's column names in source order.
func (r Record) Columns() []string {
	out := make([]string, len(r.cols))
	copy(out, r.cols)
	return out
}

// Get returns the raw value for a column and whether the column exists.
func (r Record) Get(col string) (string, bool) {
	v, ok := r.vals[col]
	return v, ok
}

// Values returns the values in column order.
func (r Record) Values() []string {
	out := make([]string, len(r.cols))
	for i, c := range r.cols {
		out[i] = r.vals[c]
	}
	return out
}

// Len reports the number of columns.
func (r Record) Len() int { return len(r.cols) }

// Dataset is an ordered sequence of records read from one source.
type Dataset struct {
	// Name is the base name of the source file, if any.
	Name    string
	Records []Record
}

// Len reports the number of records.
func (d Dataset) Len() int { return len(d.Records) }

// Empty reports whether the dataset holds no records.
func (d Dataset) Empty() bool { return len(d.Records) == 0 }

// Header returns the column names of the first record, or nil for an empty dataset.
func (d Dataset) Header() []string {
	if len(d.Records) == 0 {
		return nil
	}
	return d.Records[0].Columns()
}

// Head returns at most n records from the start of the dataset.
func (d Dataset) Head(n int) []Record {
	if n < 0 || n >= len(d.Records) {
		return d.Records
	}
	return d.Records[:n]
}

// FromRows builds a dataset from a header and raw rows. Short rows are padded with
// empty values; extra cells beyond the header are dropped.
func FromRows(name string, header []string, rows [][]string) Dataset {
	ds := Dataset{Name: name, Records: make([]Record, 0, len(rows))}
	for _, row := range rows {
		ds.Records = append(ds.Records, NewRecord(header, row))
	}
	return ds
}
