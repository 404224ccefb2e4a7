package model

import "time"

// Overview is the result of one run of the rule overview generator.
type Overview struct {
	// Product is the name of the grammar checker, e.g. "LanguageTool".
	Product string `json:"product"`

	// Version is the product version shown in the report banner.
	Version string `json:"version"`

	// GeneratedAt is when the overview was built.
	GeneratedAt time.Time `json:"generated_at"`

	// Rows holds one entry per reported language, sorted by display name.
	Rows []Row `json:"rows"`

	// JavaRuleLanguages is the number of languages whose Java rule
	// directory exists. Zero means the rule data did not load.
	JavaRuleLanguages int `json:"java_rule_languages"`
}

// NewOverview creates an empty overview for the given product.
func NewOverview(product, version string, generatedAt time.Time) *Overview {
	return &Overview{
		Product:     product,
		Version:     version,
		GeneratedAt: generatedAt,
		Rows:        make([]Row, 0),
	}
}

// Date returns the generation date in YYYY-MM-DD form.
func (o *Overview) Date() string {
	return o.GeneratedAt.Format("2006-01-02")
}

// Row returns the row for the given language code, or nil.
func (o *Overview) Row(code string) *Row {
	for i := range o.Rows {
		if o.Rows[i].Code == code {
			return &o.Rows[i]
		}
	}
	return nil
}

// TotalXMLRules sums the XML rule counts of all rows.
func (o *Overview) TotalXMLRules() int {
	total := 0
	for _, r := range o.Rows {
		total += r.XMLRules
	}
	return total
}

// TotalJavaRules sums the Java rule counts of all rows.
func (o *Overview) TotalJavaRules() int {
	total := 0
	for _, r := range o.Rows {
		total += r.JavaRules
	}
	return total
}

// TotalFalseFriends sums the false friend counts of all rows.
func (o *Overview) TotalFalseFriends() int {
	total := 0
	for _, r := range o.Rows {
		total += r.FalseFriends
	}
	return total
}
