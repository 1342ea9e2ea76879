package engine

import (
	"fmt"

	"github.com/piwi3910/SpritePack/internal/model"
)

// ComparisonScenario defines a named atlas config to compare.
type ComparisonScenario struct {
	Name   string
	Config model.AtlasConfig
}

// ComparisonResult holds the pack result and computed statistics for a
// single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Result        model.PackResult
	PlacedCount   int
	RejectedCount int
	Efficiency    float64
	Err           error
}

// CompareScenarios packs the same entries under each scenario and returns
// the results in scenario order. Each scenario sorts the entries with its
// own sort method, so entries must be given in the caller's custom order.
func CompareScenarios(scenarios []ComparisonScenario, entries []model.ImageEntry) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := New(scenario.Config).SortAndPack(entries)
		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Result:        result,
			PlacedCount:   len(result.Placed),
			RejectedCount: len(result.Rejected),
			Efficiency:    result.Efficiency(scenario.Config),
			Err:           err,
		})
	}

	return results
}

// BuildDefaultScenarios generates what-if alternatives to base: every other
// sort method at the current size, and the current sort at the next larger
// menu size.
func BuildDefaultScenarios(base model.AtlasConfig) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Current Settings", Config: base},
	}

	for _, m := range model.SortMethods {
		if m == base.Sort || m == model.SortCustom {
			continue
		}
		alt := base
		alt.Sort = m
		scenarios = append(scenarios, ComparisonScenario{
			Name:   fmt.Sprintf("Sort %s", m.Label()),
			Config: alt,
		})
	}

	if next, ok := model.NextAtlasSize(base.Width, base.Height); ok {
		alt := base
		alt.Width, alt.Height = next.Width, next.Height
		scenarios = append(scenarios, ComparisonScenario{
			Name:   fmt.Sprintf("Atlas %s", next),
			Config: alt,
		})
	}

	return scenarios
}

// BestScenario returns the index of the result placing the most entries,
// breaking ties by the earlier scenario. It returns -1 when every scenario failed.
func BestScenario(results []ComparisonResult) int {
	best := -1
	for i, r := range results {
		if r.Err != nil {
			continue
		}
		if best < 0 || r.PlacedCount > results[best].PlacedCount {
			best = i
		}
	}
	return best
}

// SmallestFit returns the first size in sizes that places every entry under
// base's padding and sort method.
func SmallestFit(entries []model.ImageEntry, base model.AtlasConfig, sizes []model.AtlasSize) (model.AtlasConfig, model.PackResult, bool) {
	if !base.Sort.Valid() {
		return base, model.PackResult{}, false
	}
	ordered := Sort(entries, base.Sort)
	for _, s := range sizes {
		cfg := base
		cfg.Width, cfg.Height = s.Width, s.Height
		result, err := Pack(ordered, cfg)
		if err != nil {
			continue
		}
		if len(result.Rejected) == 0 {
			return cfg, result, true
		}
	}
	return base, model.PackResult{}, false
}
