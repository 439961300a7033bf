package ports

import (
	"github.com/VinniZP/lingx-sub016/internal/domain"
)

// ParsedEntry is one key/value pair read from an uploaded file.
type ParsedEntry struct {
	Key   domain.KeyRef
	Value string
}

type ParseResult struct {
	Entries []ParsedEntry
}

type Parser interface {
	Format() string
	Parse(data []byte) (ParseResult, error)
}
