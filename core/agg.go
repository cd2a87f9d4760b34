package core

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/huangsam/tabchart/schema"
	"github.com/paveg/gorilla"
)

// groupRowsColumn is the row count gorilla computes alongside the sums, so that
// a group-by over keys alone still has one aggregation.
const groupRowsColumn = "rows"

// GroupSum groups the table by keys and sums each value column per group.
// Rows with a missing key are dropped; missing and non-finite measures
// contribute nothing. Output rows are ordered by key.
func GroupSum(t *schema.Table, keys, values []string) (*schema.Aggregate, error) {
	if len(keys) == 0 {
		return nil, errors.New("group-sum needs at least one key column")
	}
	keyCols := make([]*schema.Column, len(keys))
	for i, k := range keys {
		c, err := t.Column(k)
		if err != nil {
			return nil, err
		}
		keyCols[i] = c
	}
	valCols := make([]*schema.Column, len(values))
	for i, v := range values {
		c, err := t.Column(v)
		if err != nil {
			return nil, err
		}
		if !c.Kind.Numeric() {
			return nil, fmt.Errorf("%w: %q is %s", schema.ErrNotNumeric, v, c.Kind)
		}
		valCols[i] = c
	}

	agg := &schema.Aggregate{
		KeyColumns:   slices.Clone(keys),
		ValueColumns: slices.Clone(values),
	}

	// Key cells are encoded with keyID; reps maps each ID back to the first
	// cell seen with it, per key column.
	ids := make([][]string, len(keyCols))
	reps := make([]map[string]any, len(keyCols))
	for k := range reps {
		reps[k] = make(map[string]any)
	}
	measures := make([][]float64, len(valCols))

rows:
	for r := range t.Len() {
		for _, c := range keyCols {
			if c.Cells[r] == nil {
				continue rows
			}
		}
		for k, c := range keyCols {
			id := keyID(c.Cells[r])
			if _, ok := reps[k][id]; !ok {
				reps[k][id] = c.Cells[r]
			}
			ids[k] = append(ids[k], id)
		}
		for vi, c := range valCols {
			f, _ := c.Float(r)
			measures[vi] = append(measures[vi], f)
		}
	}
	if len(ids[0]) == 0 {
		return agg, nil
	}

	groups, err := sumFrame(ids, measures)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		tuple := make([]any, len(keyCols))
		for k, id := range g.ids {
			tuple[k] = reps[k][id]
		}
		agg.Rows = append(agg.Rows, schema.AggregateRow{Keys: tuple, Values: g.sums})
	}

	slices.SortStableFunc(agg.Rows, func(a, b schema.AggregateRow) int {
		return schema.CompareKeyTuples(a.Keys, b.Keys)
	})
	return agg, nil
}

// GroupSumNumeric groups by keys and sums every numeric non-key column.
// Non-numeric columns are left out rather than rejected.
func GroupSumNumeric(t *schema.Table, keys []string) (*schema.Aggregate, error) {
	var values []string
	for _, c := range t.Columns {
		if c.Kind.Numeric() && !slices.Contains(keys, c.Name) {
			values = append(values, c.Name)
		}
	}
	return GroupSum(t, keys, values)
}

// group is one output row of sumFrame.
type group struct {
	ids  []string
	sums []float64
}

// sumFrame loads encoded key columns and measures into a gorilla DataFrame,
// groups by every key column and sums each measure.
func sumFrame(ids [][]string, measures [][]float64) ([]group, error) {
	mem := memory.NewGoAllocator()

	keyNames := make([]string, len(ids))
	series := make([]gorilla.ISeries, 0, len(ids)+len(measures))
	for k, col := range ids {
		keyNames[k] = "k" + strconv.Itoa(k)
		series = append(series, gorilla.NewSeries(keyNames[k], col, mem))
	}
	sumNames := make([]string, len(measures))
	aggs := make([]*gorilla.AggregationExpression, 0, len(measures)+1)
	for vi, col := range measures {
		name := "v" + strconv.Itoa(vi)
		sumNames[vi] = "sum" + strconv.Itoa(vi)
		series = append(series, gorilla.NewSeries(name, col, mem))
		aggs = append(aggs, gorilla.Sum(gorilla.Col(name)).As(sumNames[vi]))
	}
	aggs = append(aggs, gorilla.Count(gorilla.Col(keyNames[0])).As(groupRowsColumn))
	defer func() {
		for _, s := range series {
			s.Release()
		}
	}()

	df := gorilla.NewDataFrame(series...)
	defer df.Release()

	out, err := df.Lazy().GroupBy(keyNames...).Agg(aggs...).Collect()
	if err != nil {
		return nil, fmt.Errorf("group-sum: %w", err)
	}
	defer out.Release()

	groups := make([]group, out.Len())
	for i := range groups {
		groups[i] = group{ids: make([]string, len(keyNames)), sums: make([]float64, len(sumNames))}
	}
	for k, name := range keyNames {
		arr, err := frameArray(out, name)
		if err != nil {
			return nil, err
		}
		strs, ok := arr.(*array.String)
		if !ok {
			return nil, fmt.Errorf("group-sum: key column %s is %s", name, arr.DataType())
		}
		for i := range groups {
			groups[i].ids[k] = strs.Value(i)
		}
	}
	for vi, name := range sumNames {
		arr, err := frameArray(out, name)
		if err != nil {
			return nil, err
		}
		for i := range groups {
			if groups[i].sums[vi], err = arrayFloat(arr, i); err != nil {
				return nil, fmt.Errorf("group-sum: %s: %w", name, err)
			}
		}
	}
	return groups, nil
}

func frameArray(df *gorilla.DataFrame, name string) (arrow.Array, error) {
	s, ok := df.Column(name)
	if !ok {
		return nil, fmt.Errorf("group-sum: result has no column %s", name)
	}
	return s.Array(), nil
}

// arrayFloat reads element i of a numeric Arrow array. Nulls read as zero.
func arrayFloat(arr arrow.Array, i int) (float64, error) {
	if arr.IsNull(i) {
		return 0, nil
	}
	switch a := arr.(type) {
	case *array.Float64:
		return a.Value(i), nil
	case *array.Float32:
		return float64(a.Value(i)), nil
	case *array.Int64:
		return float64(a.Value(i)), nil
	case *array.Int32:
		return float64(a.Value(i)), nil
	default:
		return 0, fmt.Errorf("unexpected sum type %s", arr.DataType())
	}
}

// keyID encodes a key cell so that keys CompareKeys treats as equal collide
// and nothing else does. Integer and float cells share one numeric encoding.
func keyID(v any) string {
	switch x := v.(type) {
	case string:
		return "s:" + x
	case float64:
		return "n:" + strconv.FormatFloat(x, 'g', -1, 64)
	case int64:
		return "n:" + strconv.FormatFloat(float64(x), 'g', -1, 64)
	case bool:
		return "b:" + strconv.FormatBool(x)
	case time.Time:
		return "t:" + x.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%T:%v", v, v)
	}
}
