// Package flatjson writes flat i18n JSON: key labels mapped to values,
// alphabetically ordered by label.
package flatjson

import (
	"encoding/json"

	"github.com/VinniZP/lingx-sub016/internal/ports"
)

type Exporter struct{}

func New() *Exporter { return &Exporter{} }

func (e *Exporter) Format() string { return "json" }

func (e *Exporter) Export(_ string, items []ports.ExportItem) ([]byte, error) {
	out := make(map[string]string, len(items))
	for _, it := range items {
		out[it.Key.Label()] = it.Value
	}
	return json.MarshalIndent(out, "", "  ")
}
