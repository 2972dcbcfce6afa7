package services

import (
	"fmt"
	"os"
	"strings"

	"fleet-rental/internal/entities"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const DefaultFamily = "truck"

// TariffTable prices maintenance by unit family and kind. Unknown families
// use the default family's prices; unknown kinds cost nothing.
type TariffTable struct {
	defaultFamily string
	prices        map[string]map[entities.MaintenanceKind]decimal.Decimal
	aliases       map[string]string
}

var defaultFamilyAliases = map[string]string{
	"pelle":           "excavator",
	"pelle mécanique": "excavator",
	"pelle mecanique": "excavator",
	"grue":            "crane",
	"chargeuse":       "loader",
	"compacteur":      "compactor",
	"camion":          "truck",
}

// tariffRow lists prices in the order preventive, corrective, overhaul,
// part replacement, emergency.
func tariffRow(prices ...int64) map[entities.MaintenanceKind]decimal.Decimal {
	row := make(map[entities.MaintenanceKind]decimal.Decimal, len(prices))
	for i, p := range prices {
		row[entities.MaintenanceKinds[i]] = decimal.NewFromInt(p)
	}
	return row
}

func DefaultTariffs() *TariffTable {
	return &TariffTable{
		defaultFamily: DefaultFamily,
		prices: map[string]map[entities.MaintenanceKind]decimal.Decimal{
			"excavator": tariffRow(800, 2000, 3000, 2500, 4000),
			"crane":     tariffRow(1500, 3500, 5000, 4500, 7000),
			"bulldozer": tariffRow(1200, 2800, 4200, 3800, 6000),
			"loader":    tariffRow(900, 2200, 3500, 3000, 5000),
			"compactor": tariffRow(700, 1800, 2500, 2200, 3500),
			"truck":     tariffRow(600, 1500, 2000, 1800, 3000),
		},
		aliases: copyAliases(defaultFamilyAliases),
	}
}

func copyAliases(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func normalizeFamily(family string) string {
	return strings.ToLower(strings.TrimSpace(family))
}

// Family resolves aliases and case; it does not apply the default fallback.
func (t *TariffTable) Family(family string) string {
	f := normalizeFamily(family)
	if canonical, ok := t.aliases[f]; ok {
		return canonical
	}
	return f
}

func (t *TariffTable) Cost(family string, kind entities.MaintenanceKind) decimal.Decimal {
	prices, ok := t.prices[t.Family(family)]
	if !ok {
		prices = t.prices[t.defaultFamily]
	}
	if price, ok := prices[kind]; ok {
		return price
	}
	return decimal.Zero
}

func (t *TariffTable) DefaultFamily() string {
	return t.defaultFamily
}

type tariffAmount struct {
	decimal.Decimal
}

func (a *tariffAmount) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: price must be a number", value.Line)
	}
	d, err := decimal.NewFromString(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid price %q", value.Line, value.Value)
	}
	a.Decimal = d
	return nil
}

type tariffFile struct {
	DefaultFamily string                             `yaml:"default_family"`
	Aliases       map[string]string                  `yaml:"aliases"`
	Families      map[string]map[string]tariffAmount `yaml:"families"`
}

// ParseTariffs reads a YAML tariff table. Built-in family aliases are kept
// unless the file redefines them.
func ParseTariffs(data []byte) (*TariffTable, error) {
	var file tariffFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse tariffs: %w", err)
	}

	table := &TariffTable{
		defaultFamily: normalizeFamily(file.DefaultFamily),
		prices:        make(map[string]map[entities.MaintenanceKind]decimal.Decimal, len(file.Families)),
		aliases:       copyAliases(defaultFamilyAliases),
	}
	if table.defaultFamily == "" {
		table.defaultFamily = DefaultFamily
	}
	for alias, family := range file.Aliases {
		table.aliases[normalizeFamily(alias)] = normalizeFamily(family)
	}

	for family, kinds := range file.Families {
		row := make(map[entities.MaintenanceKind]decimal.Decimal, len(kinds))
		for rawKind, amount := range kinds {
			kind := entities.NormalizeMaintenanceKind(rawKind)
			if !kind.IsValid() {
				return nil, fmt.Errorf("family %q: unknown maintenance kind %q", family, rawKind)
			}
			if amount.IsNegative() {
				return nil, fmt.Errorf("family %q: negative price for %s", family, kind)
			}
			row[kind] = amount.Decimal
		}
		table.prices[normalizeFamily(family)] = row
	}

	if _, ok := table.prices[table.defaultFamily]; !ok {
		return nil, fmt.Errorf("default family %q has no tariffs", table.defaultFamily)
	}
	return table, nil
}

func LoadTariffs(path string) (*TariffTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tariff file: %w", err)
	}
	return ParseTariffs(data)
}
