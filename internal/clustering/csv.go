package clustering

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteFeaturesCSV writes the transformed per-session feature table with its
// cluster labels, for diagnostic consumption.
func WriteFeaturesCSV(w io.Writer, result *Result) error {
	writer := csv.NewWriter(w)
	header := append(append([]string(nil), result.FeatureNames...), "cluster")
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range result.Features {
		record := make([]string, 0, len(row)+1)
		for _, v := range row {
			record = append(record, strconv.FormatFloat(v, 'f', -1, 64))
		}
		record = append(record, strconv.Itoa(result.Labels[i]))
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
