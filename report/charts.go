package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/MUHAMMAD-FARMAN/Trusai/emotion"
	"github.com/MUHAMMAD-FARMAN/Trusai/projection"
)

const (
	facialColor = "rgba(75, 192, 192, 0.6)"
	speechColor = "rgba(153, 102, 255, 0.6)"
)

// palette colours the per-emotion line series. Series i always gets palette[i%len].
var palette = []string{
	"#e6194b", "#3cb44b", "#911eb4", "#ffe119", "#808080", "#4363d8", "#f032e6",
	"#f58231", "#46f0f0", "#bcf60c", "#008080", "#9a6324", "#800000", "#000075",
}

// SeriesColor returns the fixed colour of the i-th series.
func SeriesColor(i int) string {
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}

// Options controls how the charts are rendered.
type Options struct {
	Title      string
	Vocabulary emotion.Vocabulary
	AssetsHost string
}

func (o Options) vocabulary() emotion.Vocabulary {
	if len(o.Vocabulary) == 0 {
		return emotion.DefaultVocabulary
	}
	return o.Vocabulary
}

func (o Options) initialization(title string) opts.Initialization {
	in := opts.Initialization{PageTitle: title, Width: "100%", Height: "400px"}
	if o.AssetsHost != "" {
		in.AssetsHost = o.AssetsHost
	}
	return in
}

// ComparisonChart is a grouped bar chart of current facial vs speech scores.
func ComparisonChart(o Options, snap emotion.Snapshot) *charts.Bar {
	pairs := projection.Comparison(o.vocabulary(), snap)
	x := make([]string, len(pairs))
	facial := make([]opts.BarData, len(pairs))
	speech := make([]opts.BarData, len(pairs))
	for i, p := range pairs {
		x[i] = p.Emotion
		facial[i] = opts.BarData{Value: p.Facial}
		speech[i] = opts.BarData{Value: p.Speech}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(o.initialization("Emotion Comparison")),
		charts.WithTitleOpts(opts.Title{Title: "Emotion Comparison"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(x).
		AddSeries("Facial Emotions", facial, charts.WithItemStyleOpts(opts.ItemStyle{Color: facialColor})).
		AddSeries("Speech Emotions", speech, charts.WithItemStyleOpts(opts.ItemStyle{Color: speechColor}))
	return bar
}

// RadarChart draws the current scores of both modalities on axes fixed to [0, 1].
// Scores outside that range are drawn as they are.
func RadarChart(o Options, snap emotion.Snapshot) *charts.Radar {
	v := o.vocabulary()
	indicators := make([]*opts.Indicator, len(v))
	for i, e := range v {
		indicators[i] = &opts.Indicator{Name: e, Min: 0, Max: 1}
	}

	radar := charts.NewRadar()
	radar.SetGlobalOptions(
		charts.WithInitializationOpts(o.initialization("Emotions Radar")),
		charts.WithTitleOpts(opts.Title{Title: "Emotions Radar"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithRadarComponentOpts(opts.RadarComponent{Indicator: indicators}),
	)
	radar.AddSeries("Speech Emotions", radarData(v, snap, emotion.Speech),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: speechColor}))
	radar.AddSeries("Facial Emotions", radarData(v, snap, emotion.Facial),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: facialColor}))
	return radar
}

func radarData(v emotion.Vocabulary, snap emotion.Snapshot, m emotion.Modality) []opts.RadarData {
	axes := projection.Radar(v, snap, m)
	vals := make([]float64, len(axes))
	for i, a := range axes {
		vals[i] = a.Value
	}
	return []opts.RadarData{{Name: m.String(), Value: vals}}
}

// TimelineChart plots every vocabulary emotion of m against history position.
func TimelineChart(o Options, snap emotion.Snapshot, m emotion.Modality) *charts.Line {
	title := modalityTitle(m) + " Emotions Over Time"

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(o.initialization(title)),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("%d readings", len(snap.History(m)))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	line.SetXAxis(projection.Indices(snap, m))
	for i, s := range projection.AllSeries(o.vocabulary(), snap, m) {
		data := make([]opts.LineData, len(s.Points))
		for j, p := range s.Points {
			data[j] = opts.LineData{Value: p.Score}
		}
		c := SeriesColor(i)
		line.AddSeries(s.Label, data,
			charts.WithLineStyleOpts(opts.LineStyle{Color: c}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: c}),
		)
	}
	return line
}

func modalityTitle(m emotion.Modality) string {
	switch m {
	case emotion.Facial:
		return "Facial"
	case emotion.Speech:
		return "Speech"
	}
	return m.String()
}

// NewPage lays out all views of snap on one page.
func NewPage(o Options, snap emotion.Snapshot) *components.Page {
	page := components.NewPage()
	page.PageTitle = o.Title
	if page.PageTitle == "" {
		page.PageTitle = "Emotion Analysis Visualizations"
	}
	if o.AssetsHost != "" {
		page.SetAssetsHost(o.AssetsHost)
	}
	page.AddCharts(
		ComparisonChart(o, snap),
		RadarChart(o, snap),
		TimelineChart(o, snap, emotion.Facial),
		TimelineChart(o, snap, emotion.Speech),
	)
	return page
}

// Render writes the HTML page for snap to w.
func Render(w io.Writer, o Options, snap emotion.Snapshot) error {
	if err := NewPage(o, snap).Render(w); err != nil {
		return fmt.Errorf("render charts: %w", err)
	}
	return nil
}
