package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/cosmiccatalog/cosmic-catalog/internal/datastore"
	"github.com/cosmiccatalog/cosmic-catalog/internal/health"
	"github.com/cosmiccatalog/cosmic-catalog/internal/observation"
)

const badgeText = "Don't Panic"

// ObservationView is the JSON shape of an observation.
type ObservationView struct {
	ID                uint      `json:"id"`
	Telescope         string    `json:"telescope"`
	ProgramID         string    `json:"programId"`
	TargetName        string    `json:"targetName"`
	RA                float64   `json:"ra"`
	Dec               float64   `json:"dec"`
	ObsDate           time.Time `json:"obsDate"`
	Instrument        string    `json:"instrument"`
	Filters           string    `json:"filters"`
	ExposureSec       int       `json:"exposureSec"`
	ImageURL          string    `json:"imageUrl"`
	Score             int       `json:"score"`
	Status            string    `json:"status"`
	Version           int       `json:"version"`
	HasDontPanicBadge bool      `json:"hasDontPanicBadge"`
}

// NewObservationView converts o for output.
func NewObservationView(o *observation.Observation) ObservationView {
	return ObservationView{
		ID:                o.ID,
		Telescope:         o.Telescope,
		ProgramID:         o.ProgramID,
		TargetName:        o.TargetName,
		RA:                o.RA,
		Dec:               o.Dec,
		ObsDate:           o.ObsDate,
		Instrument:        o.Instrument,
		Filters:           o.Filters,
		ExposureSec:       o.ExposureSec,
		ImageURL:          o.ImageURL,
		Score:             o.Score,
		Status:            string(o.Status),
		Version:           o.Version,
		HasDontPanicBadge: o.HasDontPanicBadge(),
	}
}

func viewsOf(list []*observation.Observation) []ObservationView {
	views := make([]ObservationView, 0, len(list))
	for _, o := range list {
		views = append(views, NewObservationView(o))
	}
	return views
}

// Printer renders command results as tables or JSON.
type Printer struct {
	out  io.Writer
	json bool
	tz   *time.Location
	now  func() time.Time
}

// NewPrinter creates a printer. tz is used for table timestamps.
func NewPrinter(out io.Writer, asJSON bool, tz *time.Location) *Printer {
	if tz == nil {
		tz = time.Local
	}
	return &Printer{out: out, json: asJSON, tz: tz, now: time.Now}
}

func (p *Printer) writeJSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *Printer) render(tw table.Writer) error {
	tw.SetStyle(table.StyleRounded)
	_, err := fmt.Fprintln(p.out, tw.Render())
	return err
}

// Observations prints a list of observations.
func (p *Printer) Observations(list []*observation.Observation) error {
	if p.json {
		return p.writeJSON(viewsOf(list))
	}
	return p.render(p.observationTable(list))
}

// Page prints one page of a listing with its position.
func (p *Printer) Page(result *datastore.ListResult) error {
	if p.json {
		return p.writeJSON(struct {
			Items []ObservationView `json:"items"`
			Total int64             `json:"total"`
			Page  int               `json:"page"`
			Size  int               `json:"size"`
		}{viewsOf(result.Items), result.Total, result.Page, result.Size})
	}

	tw := p.observationTable(result.Items)
	pages := (result.Total + int64(result.Size) - 1) / int64(result.Size)
	tw.SetCaption("page %d of %d, %s observations", result.Page+1, max(pages, 1), humanize.Comma(result.Total))
	return p.render(tw)
}

func (p *Printer) observationTable(list []*observation.Observation) table.Writer {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"ID", "Telescope", "Target", "Instrument", "Filters", "Observed", "Score", "Status", "Version", ""})
	for _, o := range list {
		observed := "-"
		if !o.ObsDate.IsZero() {
			observed = o.ObsDate.In(p.tz).Format(time.DateOnly)
		}
		badge := ""
		if o.HasDontPanicBadge() {
			badge = badgeText
		}
		tw.AppendRow(table.Row{o.ID, o.Telescope, o.TargetName, o.Instrument, o.Filters, observed, o.Score, o.Status, o.Version, badge})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
		{Number: 9, Align: text.AlignRight},
	})
	return tw
}

// Observation prints a single observation as a key/value table.
func (p *Printer) Observation(o *observation.Observation) error {
	if p.json {
		return p.writeJSON(NewObservationView(o))
	}
	tw := table.NewWriter()
	v := NewObservationView(o)
	rows := []table.Row{
		{"ID", v.ID},
		{"Telescope", v.Telescope},
		{"Program", v.ProgramID},
		{"Target", v.TargetName},
		{"RA / Dec", fmt.Sprintf("%.4f / %.4f", v.RA, v.Dec)},
		{"Instrument", v.Instrument},
		{"Filters", v.Filters},
		{"Exposure", fmt.Sprintf("%ds", v.ExposureSec)},
		{"Score", v.Score},
		{"Status", v.Status},
		{"Version", v.Version},
	}
	if v.HasDontPanicBadge {
		rows = append(rows, table.Row{"Badge", badgeText})
	}
	tw.AppendRows(rows)
	return p.render(tw)
}

// Summaries prints import summaries.
func (p *Printer) Summaries(summaries []*observation.Summary) error {
	if p.json {
		return p.writeJSON(summaries)
	}
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Source", "Processed", "Imported", "Duplicates", "Status", "Took", "Notes"})
	for _, s := range summaries {
		took := s.CompletedAt.Sub(s.StartedAt).Round(time.Millisecond)
		tw.AppendRow(table.Row{s.Source, s.TotalProcessed, s.Imported, s.DuplicatesFound, s.Status, took, s.Notes})
	}
	return p.render(tw)
}

// Health prints a health report.
func (p *Printer) Health(info *health.Info) error {
	if p.json {
		return p.writeJSON(info)
	}
	lastImport := "never"
	if info.LastImport != nil {
		lastImport = fmt.Sprintf("%s (%s)",
			humanize.RelTime(*info.LastImport, p.now(), "ago", "from now"),
			info.LastImport.In(p.tz).Format(time.DateTime))
	}
	tw := table.NewWriter()
	tw.AppendRows([]table.Row{
		{"Version", info.Version},
		{"Observations", humanize.Comma(info.Counts.Observations)},
		{"Targets", humanize.Comma(info.Counts.Targets)},
		{"Last import", lastImport},
	})
	return p.render(tw)
}

// Message prints a one line confirmation, or a JSON object in JSON mode.
func (p *Printer) Message(key string, value any) error {
	if p.json {
		return p.writeJSON(map[string]any{key: value})
	}
	_, err := fmt.Fprintf(p.out, "%s: %v\n", key, formatValue(value))
	return err
}

func formatValue(v any) string {
	switch t := v.(type) {
	case int64:
		return humanize.Comma(t)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprint(v)
	}
}
