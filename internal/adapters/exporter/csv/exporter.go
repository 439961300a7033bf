// Package csv writes translation CSV with a namespace,key,value header,
// round-trippable through the csv parser.
package csv

import (
	"bytes"
	"encoding/csv"

	"github.com/VinniZP/lingx-sub016/internal/ports"
)

type Exporter struct{}

func New() *Exporter { return &Exporter{} }

func (e *Exporter) Format() string { return "csv" }

func (e *Exporter) Export(_ string, items []ports.ExportItem) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"namespace", "key", "value"}); err != nil {
		return nil, err
	}
	for _, it := range items {
		if err := w.Write([]string{it.Key.Namespace, it.Key.Name, it.Value}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
