package indicators

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// LevelType distinguishes support from resistance
type LevelType string

const (
	Support    LevelType = "support"
	Resistance LevelType = "resistance"
)

// Default level detection parameters
const (
	DefaultLevelWindow    = 10
	DefaultLevelThreshold = 0.02
	maxLevels             = 10
)

// Level is a clustered support or resistance price
type Level struct {
	Price     float64   `json:"price" msgpack:"price"`
	Type      LevelType `json:"type" msgpack:"type"`
	Touches   int       `json:"touches" msgpack:"touches"`
	LastTouch int       `json:"lastTouch" msgpack:"lastTouch"` // index into closes
}

type levelCluster struct {
	price   float64
	kind    LevelType
	touches []int
}

// SupportResistance finds local extrema over ±window closes, merges those within
// threshold relative distance of an existing cluster, and keeps clusters touched
// at least twice. At most ten levels are returned, strongest first.
func SupportResistance(closes []float64, window int, threshold float64) []Level {
	if window <= 0 || len(closes) < window*2 {
		return []Level{}
	}

	var clusters []*levelCluster
	add := func(price float64, kind LevelType, idx int) {
		for _, c := range clusters {
			if c.price != 0 && math.Abs(price-c.price)/c.price < threshold {
				c.touches = append(c.touches, idx)
				c.price = (c.price + price) / 2
				return
			}
		}
		clusters = append(clusters, &levelCluster{price: price, kind: kind, touches: []int{idx}})
	}

	for i := window; i < len(closes)-window; i++ {
		before := closes[i-window : i]
		after := closes[i+1 : i+window+1]
		price := closes[i]

		if price <= floats.Min(before) && price <= floats.Min(after) {
			add(price, Support, i)
		}
		if price >= floats.Max(before) && price >= floats.Max(after) {
			add(price, Resistance, i)
		}
	}

	levels := make([]Level, 0, len(clusters))
	for _, c := range clusters {
		if len(c.touches) < 2 {
			continue
		}
		last := c.touches[0]
		for _, idx := range c.touches {
			if idx > last {
				last = idx
			}
		}
		levels = append(levels, Level{
			Price:     c.price,
			Type:      c.kind,
			Touches:   len(c.touches),
			LastTouch: last,
		})
	}

	sort.SliceStable(levels, func(a, b int) bool {
		return levels[a].Touches > levels[b].Touches
	})
	if len(levels) > maxLevels {
		levels = levels[:maxLevels]
	}

	return levels
}
