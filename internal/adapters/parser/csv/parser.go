// Package csvparser reads translation CSV files. The header must name a
// key column (key or name) and a value column (value, text or translation);
// an optional namespace column scopes the keys, otherwise "namespace:name"
// labels in the key column do.
package csvparser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/VinniZP/lingx-sub016/internal/domain"
	"github.com/VinniZP/lingx-sub016/internal/ports"
)

type Parser struct{}

func New() *Parser { return &Parser{} }

func (p *Parser) Format() string { return "csv" }

func (p *Parser) Parse(data []byte) (ports.ParseResult, error) {
	data = stripBOM(data)
	r := csv.NewReader(bufio.NewReader(bytes.NewReader(data)))
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		return ports.ParseResult{}, err
	}
	idx := map[string]int{}
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	keyIdx := -1
	for _, name := range []string{"key", "name"} {
		if i, ok := idx[name]; ok {
			keyIdx = i
			break
		}
	}
	if keyIdx == -1 {
		return ports.ParseResult{}, errors.New("csv missing key column (key/name)")
	}
	valIdx := -1
	for _, name := range []string{"value", "text", "translation"} {
		if i, ok := idx[name]; ok {
			valIdx = i
			break
		}
	}
	if valIdx == -1 {
		return ports.ParseResult{}, errors.New("csv missing value column (value/text/translation)")
	}
	nsIdx := -1
	if i, ok := idx["namespace"]; ok {
		nsIdx = i
	}
	var entries []ports.ParsedEntry
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ports.ParseResult{}, err
		}
		key := rec[keyIdx]
		if key == "" {
			continue
		}
		ref := domain.ParseKeyLabel(key)
		if nsIdx >= 0 && nsIdx < len(rec) && rec[nsIdx] != "" {
			ref = domain.KeyRef{Namespace: rec[nsIdx], Name: key}
		}
		entries = append(entries, ports.ParsedEntry{Key: ref, Value: rec[valIdx]})
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
