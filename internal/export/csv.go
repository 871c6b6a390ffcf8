package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/theirongolddev/stratsim/internal/model"
	"github.com/theirongolddev/stratsim/internal/pipeline"
)

func writeCSV(w io.Writer, rep pipeline.Report, _ Options) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(rep.Result.Mode)); err != nil {
		return err
	}
	for _, row := range tableRows(rep.Result) {
		rec := make([]string, 0, len(row.Values)+1)
		rec = append(rec, strconv.Itoa(row.Month))
		for _, v := range row.Values {
			rec = append(rec, formatFull(v))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a CSV export back into its time series.
func ReadCSV(r io.Reader) (model.Result, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return model.Result{}, fmt.Errorf("reading csv: %w", err)
	}
	res, err := parseTable(records)
	if err != nil {
		return model.Result{}, fmt.Errorf("parsing csv: %w", err)
	}
	return res, nil
}
