package model

// Domain couples a capitalized display label with the column key used in
// the data source. The key casing must match the source header exactly,
// which is why both variants carry their own hardcoded table rather than
// deriving keys from labels.
type Domain struct {
	Label string
	Key   string
}

// Schema describes one CSV source variant: which columns identify a row,
// which columns carry domain scores, and whether the detail columns
// (runtime, date, paper link) are present.
type Schema struct {
	NameKey  string
	ModelKey string
	Domains  []Domain

	// Detail columns exist only in the single-file variant.
	HasDetails bool
	RuntimeKey string
	DateKey    string
	PaperKey   string
}

// Known domain labels, in dropdown order.
var domainLabels = []string{
	"Overall",
	"Biomedical",
	"Legal",
	"Finance",
	"News",
	"Scientific",
}

// SingleSchema returns the schema of the standalone leaderboard file:
// lowercase headers with runtime/date/paper columns.
func SingleSchema() Schema {
	return Schema{
		NameKey:  "team",
		ModelKey: "model",
		Domains: []Domain{
			{Label: "Overall", Key: "overall"},
			{Label: "Biomedical", Key: "biomedical"},
			{Label: "Legal", Key: "legal"},
			{Label: "Finance", Key: "finance"},
			{Label: "News", Key: "news"},
			{Label: "Scientific", Key: "scientific"},
		},
		HasDetails: true,
		RuntimeKey: "runtime",
		DateKey:    "date",
		PaperKey:   "paper_url",
	}
}

// DualSchema returns the schema shared by the standard/oracle file pair:
// capitalized System/Models headers, no detail columns.
func DualSchema() Schema {
	ds := make([]Domain, 0, len(domainLabels))
	for _, l := range domainLabels {
		ds = append(ds, Domain{Label: l, Key: l})
	}
	return Schema{
		NameKey:  "System",
		ModelKey: "Models",
		Domains:  ds,
	}
}

// DomainByLabel resolves a display label to its domain entry.
func (s Schema) DomainByLabel(label string) (Domain, bool) {
	for _, d := range s.Domains {
		if d.Label == label {
			return d, true
		}
	}
	return Domain{}, false
}

// DefaultDomain is the domain selected on first load.
func (s Schema) DefaultDomain() Domain {
	return s.Domains[0]
}
