package resolution

import (
	"github.com/muhammadchandra19/marketsim/pkg/errors"
)

// Resolution represents a candle resolution. Base candles close after a
// fixed tick count; every coarser resolution is an integer multiple of
// completed base candles.
type Resolution struct {
	Name     string
	Multiple int
}

// Supported resolutions. The base resolution covers one full tick bucket
// at the feed cadence (5 ticks at 1s by default).
var (
	Resolution5s  = Resolution{Name: "5s", Multiple: 1}
	Resolution15s = Resolution{Name: "15s", Multiple: 3}
	Resolution30s = Resolution{Name: "30s", Multiple: 6}
	Resolution1m  = Resolution{Name: "1m", Multiple: 12}
	Resolution5m  = Resolution{Name: "5m", Multiple: 60}
)

// Base is the resolution candles are aggregated and stored at.
var Base = Resolution5s

// AllResolutions lists every supported resolution.
var AllResolutions = []Resolution{
	Resolution5s, Resolution15s, Resolution30s, Resolution1m, Resolution5m,
}

var registry = make(map[string]Resolution)

func init() {
	for _, res := range AllResolutions {
		registry[res.Name] = res
	}
}

// Get returns a resolution by name. Unknown names are an explicit error,
// never approximated.
func Get(name string) (Resolution, error) {
	res, exists := registry[name]
	if !exists {
		return Resolution{}, errors.NewErrorDetails(
			"unsupported resolution: "+name,
			string(errors.ErrUnsupportedResolution),
			"resolution",
		)
	}
	return res, nil
}

// IsValid checks if a resolution name is supported.
func IsValid(name string) bool {
	_, exists := registry[name]
	return exists
}

// AllNames returns all supported resolution names.
func AllNames() []string {
	names := make([]string, 0, len(AllResolutions))
	for _, res := range AllResolutions {
		names = append(names, res.Name)
	}
	return names
}

// IsBase reports whether the resolution is the stored base resolution.
func (r Resolution) IsBase() bool {
	return r.Multiple == 1
}
