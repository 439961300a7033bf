// Package flatjson reads flat i18n JSON files: one object whose keys are
// translation key labels ("name" or "namespace:name") and whose values are
// strings. Metadata fields starting with $ are ignored.
package flatjson

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/VinniZP/lingx-sub016/internal/domain"
	"github.com/VinniZP/lingx-sub016/internal/ports"
)

type Parser struct{}

func New() *Parser { return &Parser{} }

func (p *Parser) Format() string { return "json" }

func (p *Parser) Parse(data []byte) (ports.ParseResult, error) {
	// Strip UTF-8 BOM if present
	data = stripBOM(data)
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return ports.ParseResult{}, fmt.Errorf("invalid json: %w", err)
	}
	entries := make([]ports.ParsedEntry, 0, len(m))
	for k, v := range m {
		if len(k) == 0 || k[0] == '$' {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return ports.ParseResult{}, fmt.Errorf("value of %q is not a string", k)
		}
		entries = append(entries, ports.ParsedEntry{Key: domain.ParseKeyLabel(k), Value: s})
	}
	return ports.ParseResult{Entries: entries}, nil
}

func stripBOM(b []byte) []byte {
	bom := []byte{0xEF, 0xBB, 0xBF}
	if len(b) >= 3 && bytes.Equal(b[:3], bom) {
		return b[3:]
	}
	return b
}
