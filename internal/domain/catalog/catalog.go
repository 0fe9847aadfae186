// Package catalog holds the flight formulas sold on the site. The catalog
// is compiled in: formulas change a few times a year, with the seasons.
package catalog

import "github.com/shopspring/decimal"

type Option struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

type Formula struct {
	ID       string
	Name     string
	Duration string
	Price    decimal.Decimal
	Options  []Option
}

// Option returns the formula's option with the given ID, or false when the
// formula does not offer it. Winter formulas only sell the video option.
func (f *Formula) Option(optionID string) (Option, bool) {
	for _, o := range f.Options {
		if o.ID == optionID {
			return o, true
		}
	}
	return Option{}, false
}

var summerOptions = []Option{
	{ID: "acrobatie", Name: "Acrobatie", Price: decimal.NewFromInt(10)},
	{ID: "pilotage", Name: "Pilotage", Price: decimal.NewFromInt(10)},
	{ID: "photo-video", Name: "Photo/Vidéo", Price: decimal.NewFromInt(30)},
}

var winterOptions = []Option{
	{ID: "photo-video", Name: "Photo/Vidéo", Price: decimal.NewFromInt(30)},
}

var formulas = []Formula{
	{
		ID:       "decouverte-ete",
		Name:     "Découverte",
		Duration: "~15 minutes",
		Price:    decimal.NewFromInt(95),
		Options:  summerOptions,
	},
	{
		ID:       "ascendances",
		Name:     "Ascendances",
		Duration: "~25 minutes",
		Price:    decimal.NewFromInt(130),
		Options:  summerOptions,
	},
	{
		ID:       "balade",
		Name:     "Balade Aérienne",
		Duration: "~45 minutes",
		Price:    decimal.NewFromInt(160),
		Options:  summerOptions,
	},
	{
		ID:       "decouverte-hiver",
		Name:     "Découverte Ski",
		Duration: "~12 minutes",
		Price:    decimal.NewFromInt(85),
		Options:  winterOptions,
	},
	{
		ID:       "promenade-hiver",
		Name:     "Le Grand Vol",
		Duration: "25 minutes",
		Price:    decimal.NewFromInt(145),
		Options:  winterOptions,
	},
}

// FindFormula looks a formula up by ID across both seasons.
func FindFormula(formulaID string) (*Formula, bool) {
	for i := range formulas {
		if formulas[i].ID == formulaID {
			return &formulas[i], true
		}
	}
	return nil, false
}

// Formulas returns the full catalog.
func Formulas() []Formula {
	out := make([]Formula, len(formulas))
	copy(out, formulas)
	return out
}
