// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
)

// AppendCSV appends one row of fields to filename, creating it if
// necessary. Adapted from server/log.go's AppendLog: floats are rendered
// with fixed precision so turn-by-turn logs diff cleanly across runs.
func AppendCSV(filename string, fields []interface{}) error {
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	row := make([]string, 0, len(fields))
	for _, field := range fields {
		switch v := field.(type) {
		case float32, float64:
			row = append(row, fmt.Sprintf("%.4f", v))
		default:
			row = append(row, fmt.Sprint(v))
		}
	}

	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
