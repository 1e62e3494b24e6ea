package excel

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"seqentropy/domain/core"
	"seqentropy/domain/sequence"
	"seqentropy/internal"
	"seqentropy/internal/errors"
)

// DataReader reads integer-coded sequences from text, CSV or Excel files
type DataReader struct {
	config   ReaderConfig
	fileType string // "txt", "csv" or "xlsx"
	logger   *internal.Logger
}

// NewDataReader creates a reader; the format follows the file extension
func NewDataReader(config ReaderConfig) *DataReader {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	fileType := "txt"
	switch ext {
	case ".csv", ".tsv":
		fileType = "csv"
	case ".xlsx", ".xlsm":
		fileType = "xlsx"
	}
	if config.Sheet == "" {
		config.Sheet = DefaultSheet
	}
	return &DataReader{
		config:   config,
		fileType: fileType,
		logger:   internal.DefaultLogger.WithComponent("DataReader"),
	}
}

// ReadAll reads every sequence in the file
func (r *DataReader) ReadAll(ctx context.Context) ([]sequence.Named, error) {
	r.logger.Debug("Reading %s file: %s", r.fileType, r.config.FilePath)

	if _, err := os.Stat(r.config.FilePath); os.IsNotExist(err) {
		return nil, errors.NotFound(fmt.Sprintf("%s file %s", strings.ToUpper(r.fileType), r.config.FilePath))
	}

	start := time.Now()
	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		rows, err = r.readTextRows()
	}
	if err != nil {
		return nil, err
	}
	r.logger.Debug("%s file read in %.2fms (%d rows)", strings.ToUpper(r.fileType),
		float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	if r.config.Columns && r.fileType != "txt" {
		rows = transpose(rows)
	}
	return r.processRows(ctx, rows)
}

// readTextRows treats each non-blank line as one sequence. "key: 0 1 2"
// lines carry their own key; lines starting with # are comments. Every
// returned row starts with its label, which may be empty.
func (r *DataReader) readTextRows() ([][]string, error) {
	file, err := os.Open(r.config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open text file: %w", err)
	}
	defer file.Close()

	var rows [][]string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		label := ""
		if k, rest, ok := strings.Cut(line, ":"); ok {
			label, line = strings.TrimSpace(k), rest
		}
		fields := strings.FieldsFunc(line, func(c rune) bool {
			return c == ',' || c == ' ' || c == '\t' || c == ';'
		})
		if label == "" && r.config.Labels && len(fields) > 0 {
			label, fields = fields[0], fields[1:]
		}
		rows = append(rows, append([]string{label}, fields...))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read text file: %w", err)
	}
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	if strings.EqualFold(filepath.Ext(r.config.FilePath), ".tsv") {
		reader.Comma = '\t'
	}
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("failed to read CSV file: %w", err))
	}
	return rows, nil
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.config.Sheet)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("failed to read %s: %w", r.config.Sheet, err))
	}
	return rows, nil
}

// processRows converts raw string rows into named sequences
func (r *DataReader) processRows(ctx context.Context, rows [][]string) ([]sequence.Named, error) {
	out := make([]sequence.Named, 0, len(rows))
	base := strings.TrimSuffix(filepath.Base(r.config.FilePath), filepath.Ext(r.config.FilePath))
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		key := fmt.Sprintf("%s#%d", base, i+1)
		cells := row
		if (r.config.Labels || r.fileType == "txt") && len(row) > 0 {
			if label := strings.TrimSpace(row[0]); label != "" {
				key = label
			}
			cells = row[1:]
		}
		codes, err := sequence.FromStrings(cells)
		if err != nil {
			return nil, errors.Wrapf(err, "%s row %d", r.config.FilePath, i+1)
		}
		out = append(out, sequence.Named{Key: core.SequenceKey(key), Codes: codes})
	}
	r.logger.Info("%s: %d sequences", r.config.FilePath, len(out))
	return out, nil
}

// transpose turns ragged rows into columns; missing cells become blanks,
// which FromStrings skips.
func transpose(rows [][]string) [][]string {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	cols := make([][]string, width)
	for c := range cols {
		cols[c] = make([]string, len(rows))
		for i, row := range rows {
			if c < len(row) {
				cols[c][i] = row[c]
			}
		}
	}
	return cols
}
