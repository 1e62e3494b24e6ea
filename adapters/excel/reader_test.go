package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"seqentropy/domain/core"
	"seqentropy/domain/sequence"
	"seqentropy/internal/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadText(t *testing.T) {
	path := writeFile(t, "runs.txt", "# comment\nalpha: 0 1 0 1\n\n2,2 2\nbeta:\n")

	seqs, err := NewDataReader(ReaderConfig{FilePath: path}).ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, seqs, 3)

	assert.Equal(t, core.SequenceKey("alpha"), seqs[0].Key)
	assert.Equal(t, sequence.Sequence{0, 1, 0, 1}, seqs[0].Codes)
	assert.Equal(t, core.SequenceKey("runs#2"), seqs[1].Key)
	assert.Equal(t, sequence.Sequence{2, 2, 2}, seqs[1].Codes)
	assert.Equal(t, core.SequenceKey("beta"), seqs[2].Key)
	assert.Empty(t, seqs[2].Codes)
}

func TestReadTextLabelledByFirstField(t *testing.T) {
	path := writeFile(t, "runs.seq", "s1 3 3 4\ns2 5\n")

	seqs, err := NewDataReader(ReaderConfig{FilePath: path, Labels: true}).ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, seqs, 2)
	assert.Equal(t, core.SequenceKey("s1"), seqs[0].Key)
	assert.Equal(t, sequence.Sequence{3, 3, 4}, seqs[0].Codes)
	assert.Equal(t, sequence.Sequence{5}, seqs[1].Codes)
}

func TestReadCSVRowsAndColumns(t *testing.T) {
	path := writeFile(t, "data.csv", "a,0,1,1\nb,2,2\n")

	rows, err := NewDataReader(ReaderConfig{FilePath: path, Labels: true}).ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, core.SequenceKey("a"), rows[0].Key)
	assert.Equal(t, sequence.Sequence{0, 1, 1}, rows[0].Codes)
	assert.Equal(t, sequence.Sequence{2, 2}, rows[1].Codes)

	path = writeFile(t, "cols.csv", "x,y\n1,4\n2,5\n3,\n")
	cols, err := NewDataReader(ReaderConfig{FilePath: path, Labels: true, Columns: true}).ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, core.SequenceKey("x"), cols[0].Key)
	assert.Equal(t, sequence.Sequence{1, 2, 3}, cols[0].Codes)
	assert.Equal(t, core.SequenceKey("y"), cols[1].Key)
	assert.Equal(t, sequence.Sequence{4, 5}, cols[1].Codes)
}

func TestReadExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"first", 0, 1, 0, 1}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"second", 7, 7}))
	_, err := f.NewSheet("Other")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Other", "A1", &[]interface{}{9, 8}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	seqs, err := NewDataReader(ReaderConfig{FilePath: path, Labels: true}).ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, seqs, 2)
	assert.Equal(t, core.SequenceKey("first"), seqs[0].Key)
	assert.Equal(t, sequence.Sequence{0, 1, 0, 1}, seqs[0].Codes)
	assert.Equal(t, sequence.Sequence{7, 7}, seqs[1].Codes)

	other, err := NewDataReader(ReaderConfig{FilePath: path, Sheet: "Other"}).ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, core.SequenceKey("book#1"), other[0].Key)
	assert.Equal(t, sequence.Sequence{9, 8}, other[0].Codes)

	_, err = NewDataReader(ReaderConfig{FilePath: path, Sheet: "Missing"}).ReadAll(context.Background())
	assert.Error(t, err)
}

func TestReadErrors(t *testing.T) {
	_, err := NewDataReader(ReaderConfig{FilePath: filepath.Join(t.TempDir(), "nope.csv")}).ReadAll(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))

	path := writeFile(t, "bad.txt", "0 1 two\n")
	_, err = NewDataReader(ReaderConfig{FilePath: path}).ReadAll(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path = writeFile(t, "ok.txt", "0 1\n")
	_, err = NewDataReader(ReaderConfig{FilePath: path}).ReadAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
