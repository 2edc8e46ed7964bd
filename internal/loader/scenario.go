package loader

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/napolitain/solver-leaves/internal/models"
	"github.com/napolitain/solver-leaves/internal/solver/leaves"
)

// ErrInvalidScenario is returned for malformed scenario files
var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is a planning problem read from a JSON file
type Scenario struct {
	Start     models.Leaves
	End       models.Leaves
	Direction leaves.Direction
	Constants models.Constants
}

// constantSetters maps snake_case keys of the "constants" object to Constants fields
var constantSetters = map[string]func(*models.Constants, gjson.Result) error{
	"essence_per_dark":         floatField(func(c *models.Constants, v float64) { c.EssencePerDark = v }),
	"dark_per_ascension_shard": intField(func(c *models.Constants, v int) { c.DarkPerAscensionShard = v }),
	"dark_per_fusion_shard":    intField(func(c *models.Constants, v int) { c.DarkPerFusionShard = v }),
	"hours_per_run":            floatField(func(c *models.Constants, v float64) { c.HoursPerRun = v }),
	"base_essence_per_run":     floatField(func(c *models.Constants, v float64) { c.BaseEssencePerRun = v }),
	"base_crit_rate":           floatField(func(c *models.Constants, v float64) { c.BaseCritRate = v }),
	"wem_bonus_exponent":       floatField(func(c *models.Constants, v float64) { c.WemBonusExponent = v }),
	"crit_bonus_exponent":      floatField(func(c *models.Constants, v float64) { c.CritBonusExponent = v }),
	"wem_shards":               intField(func(c *models.Constants, v int) { c.WemShards = v }),
	"crit_shards":              intField(func(c *models.Constants, v int) { c.CritShards = v }),
	"item_levels":              intField(func(c *models.Constants, v int) { c.ItemLevels = v }),
	"quality":                  intField(func(c *models.Constants, v int) { c.Quality = v }),
	"max_level":                setMaxLevel,
	"leaves_per_set":           intField(func(c *models.Constants, v int) { c.LeavesPerSet = v }),
	"base_weight":              intField(func(c *models.Constants, v int) { c.BaseWeight = v }),
	"fusion_multiplier":        intField(func(c *models.Constants, v int) { c.FusionMultiplier = v }),
	"fusion_costs":             setFusionCosts,
}

var scenarioKeys = map[string]bool{
	"start":     true,
	"end":       true,
	"direction": true,
	"constants": true,
}

// LoadScenario reads and parses a scenario file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}

	s, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return s, nil
}

// ParseScenario parses a scenario document.
//
// Missing start and end default to a full set of a0 and a full set of top
// hematite leaves. Missing constants keep their default values.
func ParseScenario(data []byte) (*Scenario, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidScenario)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: top level must be an object", ErrInvalidScenario)
	}

	var unknown error
	doc.ForEach(func(key, _ gjson.Result) bool {
		if !scenarioKeys[key.String()] {
			unknown = fmt.Errorf("%w: unknown key %q", ErrInvalidScenario, key.String())
			return false
		}
		return true
	})
	if unknown != nil {
		return nil, unknown
	}

	constants, err := parseConstants(doc.Get("constants"))
	if err != nil {
		return nil, err
	}

	s := &Scenario{Constants: constants}

	if s.Start, err = parseLeaves(doc.Get("start"), models.Leaf{Tier: models.Ancient}, constants); err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	top := models.Leaf{Tier: models.Hematite, Level: constants.MaxLevel}
	if s.End, err = parseLeaves(doc.Get("end"), top, constants); err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	if dir := doc.Get("direction"); dir.Exists() {
		if dir.Type != gjson.String {
			return nil, fmt.Errorf("%w: direction must be a string", ErrInvalidScenario)
		}
		if s.Direction, err = leaves.ParseDirection(strings.ToLower(dir.String())); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
		}
	}

	return s, nil
}

func parseConstants(raw gjson.Result) (models.Constants, error) {
	c := models.DefaultConstants()
	if !raw.Exists() {
		return c, nil
	}
	if !raw.IsObject() {
		return c, fmt.Errorf("%w: constants must be an object", ErrInvalidScenario)
	}

	var err error
	raw.ForEach(func(key, value gjson.Result) bool {
		set, ok := constantSetters[key.String()]
		if !ok {
			err = fmt.Errorf("%w: unknown constant %q", ErrInvalidScenario, key.String())
			return false
		}
		if setErr := set(&c, value); setErr != nil {
			err = fmt.Errorf("%w: constant %q: %v", ErrInvalidScenario, key.String(), setErr)
			return false
		}
		return true
	})
	if err != nil {
		return c, err
	}

	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// parseLeaves accepts "a0 a0 s3" or ["a0", "a0", "s3"]; a missing value is a
// full set of fill
func parseLeaves(raw gjson.Result, fill models.Leaf, c models.Constants) (models.Leaves, error) {
	var (
		l   models.Leaves
		err error
	)

	switch {
	case !raw.Exists():
		return models.FullSetOf(fill, c.LeavesPerSet), nil
	case raw.Type == gjson.String:
		l, err = models.ParseLeaves(raw.String())
	case raw.IsArray():
		var items []models.Leaf
		for _, item := range raw.Array() {
			if item.Type != gjson.String {
				return l, fmt.Errorf("%w: leaves must be strings, got %s", ErrInvalidScenario, item.Raw)
			}
			leaf, parseErr := models.ParseLeaf(item.String())
			if parseErr != nil {
				return l, parseErr
			}
			items = append(items, leaf)
		}
		l, err = models.NewLeaves(items...)
	default:
		return l, fmt.Errorf("%w: leaves must be a string or an array", ErrInvalidScenario)
	}
	if err != nil {
		return l, err
	}

	if err := l.Validate(c); err != nil {
		return l, err
	}
	return l, nil
}

func floatField(set func(*models.Constants, float64)) func(*models.Constants, gjson.Result) error {
	return func(c *models.Constants, v gjson.Result) error {
		if v.Type != gjson.Number {
			return fmt.Errorf("expected a number, got %s", v.Raw)
		}
		set(c, v.Float())
		return nil
	}
}

func intField(set func(*models.Constants, int)) func(*models.Constants, gjson.Result) error {
	return func(c *models.Constants, v gjson.Result) error {
		if v.Type != gjson.Number || v.Num != math.Trunc(v.Num) {
			return fmt.Errorf("expected an integer, got %s", v.Raw)
		}
		set(c, int(v.Int()))
		return nil
	}
}

func setMaxLevel(c *models.Constants, v gjson.Result) error {
	if v.Type != gjson.Number || v.Num != math.Trunc(v.Num) || v.Num < 0 || v.Num > math.MaxUint8 {
		return fmt.Errorf("expected an integer in 0..%d, got %s", math.MaxUint8, v.Raw)
	}
	c.MaxLevel = uint8(v.Int())
	return nil
}

func setFusionCosts(c *models.Constants, v gjson.Result) error {
	costs := v.Array()
	if !v.IsArray() || len(costs) != models.TierCount {
		return fmt.Errorf("expected an array of %d integers", models.TierCount)
	}
	for i, cost := range costs {
		if cost.Type != gjson.Number || cost.Num != math.Trunc(cost.Num) {
			return fmt.Errorf("fusion cost %d is not an integer", i)
		}
		c.FusionCosts[i] = int(cost.Int())
	}
	return nil
}
