package grid

import (
	"strconv"
	"sync"
	"testing"

	"github.com/aretw0/tabula/pkg/columns"
	"github.com/aretw0/tabula/pkg/dispatch"
	"github.com/aretw0/tabula/pkg/domain"
	"github.com/aretw0/tabula/pkg/schema"
	"github.com/aretw0/tabula/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTable() *Table[domain.Patient] {
	reg := columns.Patients(schema.NaNReject)
	return New(dispatch.New(reg, domain.SamplePatients()))
}

func TestHeaders(t *testing.T) {
	tbl := newTable()
	headers := tbl.Headers()
	require.Len(t, headers, 5)
	assert.Equal(t, "ID", headers[0].Text)
	assert.Equal(t, "Blood Pressure", headers[4].Label)
	assert.Equal(t, "Systolic / Diastolic / Average", headers[4].PlainText())
}

func TestRender_Layout(t *testing.T) {
	tbl := newTable()
	cells := tbl.Render()

	require.Len(t, cells, 3)
	for _, row := range cells {
		require.Len(t, row, 5)
		for _, cell := range row {
			assert.False(t, cell.IsEmpty())
		}
	}
	assert.Equal(t, "Jane Smith", cells[1][1].Input.Value)
	assert.Equal(t, "130 / 85 / 107.5", cells[1][4].PlainText())
}

// Re-emitting every control's current content leaves the dataset as it was.
func TestRender_RoundTrip(t *testing.T) {
	tbl := newTable()

	for _, row := range tbl.Render() {
		for _, cell := range row {
			for _, in := range cell.Inputs() {
				in.Change(in.Value)
			}
		}
	}

	assert.Equal(t, domain.SamplePatients(), tbl.Snapshot())
}

func TestEdit_Scalar(t *testing.T) {
	tbl := newTable()

	changes, err := tbl.Edit(1, domain.FieldName, "", "Jane X")
	require.NoError(t, err)
	assert.Equal(t, []domain.CellChange{{Row: 1, Field: domain.FieldName, Old: "Jane Smith", New: "Jane X"}}, changes)
}

func TestEdit_CompositeSubField(t *testing.T) {
	tbl := newTable()

	changes, err := tbl.Edit(0, domain.FieldBloodPressure, domain.SubSystolic, "125")
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, domain.BloodPressure{Systolic: 125, Diastolic: 80, Average: 100}, changes[0].New)
	assert.Equal(t, domain.BloodPressure{Systolic: 125, Diastolic: 80, Average: 100}, tbl.Snapshot()[0].BloodPressure)
}

// Sub-field edits racing on one composite cell must both land.
func TestEdit_ConcurrentSubFields(t *testing.T) {
	tbl := newTable()

	for i := 0; i < 500; i++ {
		systolic, diastolic := 100+i, 60+i

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := tbl.Edit(0, domain.FieldBloodPressure, domain.SubSystolic, strconv.Itoa(systolic))
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := tbl.Edit(0, domain.FieldBloodPressure, domain.SubDiastolic, strconv.Itoa(diastolic))
			assert.NoError(t, err)
		}()
		wg.Wait()

		bp := tbl.Snapshot()[0].BloodPressure
		require.Equal(t, float64(systolic), bp.Systolic, "pair %d", i)
		require.Equal(t, float64(diastolic), bp.Diastolic, "pair %d", i)
		require.Equal(t, 100.0, bp.Average, "pair %d", i)
	}
}

// Concurrent edits each report only their own change.
func TestEdit_ConcurrentDiffs(t *testing.T) {
	tbl := newTable()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			changes, err := tbl.Edit(1, domain.FieldAge, "", strconv.Itoa(1000+i))
			assert.NoError(t, err)
			for _, c := range changes {
				assert.Equal(t, domain.FieldAge, c.Field)
			}
		}(i)
		go func(i int) {
			defer wg.Done()
			for _, c := range tbl.Dispatch(1, domain.FieldName, "name "+strconv.Itoa(i)) {
				assert.Equal(t, domain.FieldName, c.Field)
			}
		}(i)
	}
	wg.Wait()
}

func TestEdit_UnparseableNumberDropped(t *testing.T) {
	tbl := newTable()

	changes, err := tbl.Edit(0, domain.FieldAge, "", "thirty")
	require.NoError(t, err)
	assert.Empty(t, changes)
	assert.Equal(t, domain.SamplePatients(), tbl.Snapshot())
}

func TestEditResult(t *testing.T) {
	tbl := newTable()

	res, err := tbl.EditResult(0, domain.FieldName, "", "John Doe")
	require.NoError(t, err)
	assert.False(t, res.Dropped)
	assert.Empty(t, res.Changes)

	res, err = tbl.EditResult(0, domain.FieldAge, "", "thirty")
	require.NoError(t, err)
	assert.True(t, res.Dropped)
	assert.Equal(t, domain.ReasonInvalidValue, res.Reason)
	assert.Empty(t, res.Changes)

	res, err = tbl.EditResult(0, domain.FieldAge, "", "29")
	require.NoError(t, err)
	assert.False(t, res.Dropped)
	require.Len(t, res.Changes, 1)
	assert.Equal(t, 29.0, res.Changes[0].New)
}

func TestEdit_Errors(t *testing.T) {
	tbl := newTable()

	_, err := tbl.Edit(9, domain.FieldAge, "", "1")
	assert.ErrorIs(t, err, domain.ErrRowOutOfRange)

	_, err = tbl.Edit(0, "weight", "", "1")
	assert.ErrorIs(t, err, domain.ErrUnknownField)

	_, err = tbl.Edit(0, domain.FieldBloodPressure, "pulse", "1")
	assert.Error(t, err)
}

func TestDispatch(t *testing.T) {
	tbl := newTable()

	assert.Nil(t, tbl.Dispatch(5, domain.FieldAge, 50))
	assert.Nil(t, tbl.Dispatch(0, domain.FieldAge, "not-a-number-shaped-value"))

	changes := tbl.Dispatch(2, domain.FieldAge, 46)
	require.Len(t, changes, 1)
	assert.Equal(t, 46.0, changes[0].New)
}

func TestCell(t *testing.T) {
	tbl := newTable()

	node, err := tbl.Cell(2, domain.FieldEmail)
	require.NoError(t, err)
	assert.Equal(t, view.InputEmail, node.Input.Kind)
	assert.Equal(t, "sam@example.com", node.Input.Value)
}

func TestRecords(t *testing.T) {
	tbl := newTable()
	recs := tbl.Records()
	require.Len(t, recs, 3)
	assert.Equal(t, "Sam Johnson", recs[2][domain.FieldName])
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, []string{"id", "name", "age", "email", "bloodPressure"}, tbl.Fields())
	assert.Len(t, tbl.Columns(), 5)
}

func TestDescribe(t *testing.T) {
	infos := newTable().Describe()
	require.Len(t, infos, 5)

	assert.Equal(t, ColumnInfo{Field: "id", Title: "ID", Type: "int", Kind: "number", Input: view.InputNumber}, infos[0])
	assert.Equal(t, view.InputEmail, infos[3].Input)
	assert.Equal(t, "composite", infos[4].Kind)
	assert.Equal(t, []string{"systolic", "diastolic", "average"}, infos[4].SubFields)
}

func TestRecord(t *testing.T) {
	tbl := newTable()

	rec, err := tbl.Record(0)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", rec[domain.FieldName])

	_, err = tbl.Record(3)
	assert.ErrorIs(t, err, domain.ErrRowOutOfRange)
}
