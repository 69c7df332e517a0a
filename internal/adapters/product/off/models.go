package off

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"foodscan/internal/core/lookup"
)

// productDoc mirrors the slice of the v0 product response we care about
type productDoc struct {
	Status  int `json:"status"`
	Product struct {
		ProductName     string     `json:"product_name"`
		Brands          string     `json:"brands"`
		IngredientsText string     `json:"ingredients_text"`
		ImageURL        string     `json:"image_url"`
		Nutriments      nutriments `json:"nutriments"`
	} `json:"product"`
}

type nutriments struct {
	Energy100g  flexFloat `json:"energy_100g"`
	Protein100g flexFloat `json:"proteins_100g"`
	Carbs100g   flexFloat `json:"carbohydrates_100g"`
	Fat100g     flexFloat `json:"fat_100g"`
}

// flexFloat tolerates the upstream habit of emitting numeric fields as either
// JSON numbers or numeric strings. Absent, null, and unparsable values stay nil
type flexFloat struct {
	val *float64
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	s := string(b)
	if strings.HasPrefix(s, `"`) {
		var err error
		if s, err = strconv.Unquote(s); err != nil {
			return nil
		}
		s = strings.TrimSpace(s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	f.val = &v
	return nil
}

func (d *productDoc) record(code string) *lookup.ProductRecord {
	p := d.Product
	return &lookup.ProductRecord{
		Barcode:         code,
		Name:            p.ProductName,
		Brands:          p.Brands,
		IngredientsText: p.IngredientsText,
		ImageURL:        p.ImageURL,
		Nutrients: lookup.Nutrients{
			EnergyKcal:    p.Nutriments.Energy100g.val,
			Proteins:      p.Nutriments.Protein100g.val,
			Carbohydrates: p.Nutriments.Carbs100g.val,
			Fat:           p.Nutriments.Fat100g.val,
		},
	}
}

var _ json.Unmarshaler = (*flexFloat)(nil)
