package instrument

import "time"

// Instrument represents a tradeable synthetic instrument. Immutable once
// created; the symbol is unique.
type Instrument struct {
	ID        string
	Symbol    string
	Name      string
	CreatedAt time.Time
}
