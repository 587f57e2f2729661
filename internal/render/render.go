// Package render turns a ranked dataset into the HTML table fragment and
// page state consumed by the leaderboard page. Rendering is a pure function
// of (dataset, schema, domain, search term); the same inputs always produce
// the same view.
package render

import (
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/podiumlab/podium/internal/domain/model"
	"github.com/podiumlab/podium/internal/domain/ranking"
	"github.com/podiumlab/podium/pkg/metrics"
)

// Headings swapped by the oracle toggle.
const (
	HeadingStandard = "Benchmark Leaderboard"
	HeadingOracle   = "Benchmark Leaderboard (Oracle)"
)

// Empty-state messages. The three cases are deliberately distinct so the
// user can tell an empty file from an absent domain from a fruitless search.
const (
	msgNoData       = "no data available"
	msgNoDomainData = "no data available for this domain"
	msgNoMatches    = "no matching results"
)

const medalRanks = 3

// medalStyle is the CSS backing the top-three row classes and the search
// highlight marker. The page inserts it into the document head guarded by
// the element id, so repeated renders never duplicate the rules.
const medalStyle = `<style id="medal-style">
tr.medal-1 td{background:#3a2f0b}
tr.medal-1 td.rank::before{content:"\1F947\20"}
tr.medal-2 td{background:#2e2e33}
tr.medal-2 td.rank::before{content:"\1F948\20"}
tr.medal-3 td{background:#3a230b}
tr.medal-3 td.rank::before{content:"\1F949\20"}
mark.hl{background:#9e6a03;color:#fff;padding:0 1px;border-radius:2px}
</style>`

// View is the rendered page state: the table body fragment plus everything
// the page needs to redraw its chrome.
type View struct {
	Heading  string        `json:"heading"`
	Domain   string        `json:"domain"`
	Domains  []string      `json:"domains"`
	Term     string        `json:"term"`
	Oracle   bool          `json:"oracle"`
	Columns  []string      `json:"columns"`
	Style    template.HTML `json:"style"`
	Table    template.HTML `json:"table"`
	Message  string        `json:"message"`
	RowCount int           `json:"row_count"`
}

// rowView is one table row handed to the template. Name and Model are
// pre-escaped (and possibly highlighted); everything else is plain text
// the template escapes itself.
type rowView struct {
	Rank       int
	MedalClass string
	Name       template.HTML
	Model      template.HTML
	Score      string
	HasDetails bool
	Runtime    string
	Date       string
	Paper      template.HTML
}

var rowTmpl = template.Must(template.New("rows").Parse(
	`{{range .}}<tr{{if .MedalClass}} class="{{.MedalClass}}"{{end}}>` +
		`<td class="rank">{{.Rank}}</td>` +
		`<td>{{.Name}}</td>` +
		`<td>{{.Model}}</td>` +
		`<td class="score">{{.Score}}</td>` +
		`{{if .HasDetails}}<td>{{.Runtime}}</td><td>{{.Date}}</td><td class="paper">{{.Paper}}</td>{{end}}` +
		`</tr>
{{end}}`))

// Renderer builds views. It is stateless beyond its parsed template and
// safe for reuse across renders.
type Renderer struct{}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render computes the ranked, filtered, highlighted view for the dataset.
// A non-nil loadErr replaces the table with a single error row while the
// rest of the view (heading, domains, term) stays intact.
func (r *Renderer) Render(rows []model.Row, schema model.Schema, domain model.Domain, term string, oracle bool, loadErr error) View {
	start := time.Now()
	defer func() {
		metrics.RecordRender()
		metrics.ObserveRenderDuration(float64(time.Since(start).Milliseconds()))
	}()

	v := View{
		Heading: HeadingStandard,
		Domain:  domain.Label,
		Term:    term,
		Oracle:  oracle,
		Columns: columns(schema, domain),
	}
	if oracle {
		v.Heading = HeadingOracle
	}
	for _, d := range schema.Domains {
		v.Domains = append(v.Domains, d.Label)
	}

	if loadErr != nil {
		v.Message = loadErr.Error()
		v.Table = messageRow(len(v.Columns), "error", v.Message)
		return v
	}
	if len(rows) == 0 {
		v.Message = msgNoData
		v.Table = messageRow(len(v.Columns), "empty", v.Message)
		return v
	}

	entries, ranks := ranking.Compute(rows, domain.Key)
	if len(entries) == 0 {
		v.Message = msgNoDomainData
		v.Table = messageRow(len(v.Columns), "empty", v.Message)
		return v
	}

	shown := ranking.Filter(entries, ranks, schema, term)
	if len(shown) == 0 {
		v.Message = msgNoMatches
		v.Table = messageRow(len(v.Columns), "empty", v.Message)
		return v
	}

	views := make([]rowView, 0, len(shown))
	medals := false
	for _, e := range shown {
		rv := rowView{
			Rank:       e.Rank,
			Name:       template.HTML(Highlight(e.Row.Cell(schema.NameKey), term)),
			Model:      template.HTML(Highlight(e.Row.Cell(schema.ModelKey), term)),
			Score:      FormatScore(e.Score),
			HasDetails: schema.HasDetails,
		}
		if e.Rank <= medalRanks {
			rv.MedalClass = medalClass(e.Rank)
			medals = true
		}
		if schema.HasDetails {
			rv.Runtime = FormatRuntime(e.Row.Cell(schema.RuntimeKey))
			rv.Date = FormatDate(e.Row.Cell(schema.DateKey))
			rv.Paper = paperLink(e.Row.Cell(schema.PaperKey))
		}
		views = append(views, rv)
	}

	var b strings.Builder
	if err := rowTmpl.Execute(&b, views); err != nil {
		// Template is static and rowView is plain data; this cannot fail
		// at runtime, but keep the table in a defined state anyway.
		v.Message = err.Error()
		v.Table = messageRow(len(v.Columns), "error", v.Message)
		return v
	}
	v.Table = template.HTML(b.String())
	v.RowCount = len(views)
	if medals {
		v.Style = template.HTML(medalStyle)
	}
	return v
}

func columns(schema model.Schema, domain model.Domain) []string {
	cols := []string{"Rank", capitalize(schema.NameKey), capitalize(schema.ModelKey), domain.Label}
	if schema.HasDetails {
		cols = append(cols, "Runtime", "Date", "Paper")
	}
	return cols
}

func medalClass(rank int) string {
	switch rank {
	case 1:
		return "medal-1"
	case 2:
		return "medal-2"
	default:
		return "medal-3"
	}
}

func messageRow(span int, class, msg string) template.HTML {
	var b strings.Builder
	b.WriteString(`<tr class="`)
	b.WriteString(class)
	b.WriteString(`"><td colspan="`)
	b.WriteString(strconv.Itoa(span))
	b.WriteString(`">`)
	b.WriteString(Escape(msg))
	b.WriteString(`</td></tr>`)
	return template.HTML(b.String())
}

func paperLink(raw string) template.HTML {
	u := strings.TrimSpace(raw)
	if u == "" {
		return template.HTML("")
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		// Unexpected scheme; show the text but do not link it.
		return template.HTML(Escape(u))
	}
	return template.HTML(`<a href="` + template.HTMLEscapeString(u) + `" target="_blank" rel="noopener">paper</a>`)
}
