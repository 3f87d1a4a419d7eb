package export

import (
	"io"
	"sort"
	"strconv"

	"github.com/BerylCAtieno/strategy-mapper/internal/models"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

func writeMarkdown(w io.Writer, data Data) error {
	md := markdown.NewMarkdown(w)

	md.H1("Strategy Map Export")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Generated", data.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Entities", strconv.Itoa(len(data.Clients))},
		},
	})
	md.PlainText("")

	writeIndustryBreakdown(md, data.Clients)
	writeClientTable(md, data.Clients)
	if data.Insight != nil {
		writeInsight(md, data.Insight)
	}

	return md.Build()
}

type industryCount struct {
	industry string
	n        int
}

func countByIndustry(clients []models.Client) []industryCount {
	counts := map[string]int{}
	for _, c := range clients {
		counts[c.Industry]++
	}
	out := make([]industryCount, 0, len(counts))
	for ind, n := range counts {
		out = append(out, industryCount{industry: ind, n: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].n != out[j].n {
			return out[i].n > out[j].n
		}
		return out[i].industry < out[j].industry
	})
	return out
}

func writeIndustryBreakdown(md *markdown.Markdown, clients []models.Client) {
	if len(clients) == 0 {
		return
	}
	md.H2("By Industry")
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Entities by industry"),
		piechart.WithShowData(true),
	)
	for _, ic := range countByIndustry(clients) {
		label := ic.industry
		if label == "" {
			label = "Uncategorized"
		}
		chart.LabelAndIntValue(label, uint64(ic.n))
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func writeClientTable(md *markdown.Markdown, clients []models.Client) {
	md.H2("Entities")
	md.PlainText("")
	if len(clients) == 0 {
		md.PlainText("No entities mapped.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, []string{
			c.Name,
			c.Industry,
			c.Address,
			strconv.FormatFloat(c.Latitude, 'f', 4, 64) + ", " + strconv.FormatFloat(c.Longitude, 'f', 4, 64),
			strconv.FormatFloat(c.Revenue, 'f', -1, 64),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Name", "Industry", "Address", "Location", "Revenue"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeInsight(md *markdown.Markdown, insight *models.StrategicInsight) {
	md.H2("Regional Insights")
	md.PlainText("")
	md.PlainText(insight.Summary)
	md.PlainText("")

	sections := []struct {
		title string
		items []string
	}{
		{"Opportunities", insight.Recommendations},
		{"Location Clusters", insight.Hotspots},
		{"Growth Notes", insight.RiskAreas},
	}
	for _, s := range sections {
		if len(s.items) == 0 {
			continue
		}
		md.H3(s.title)
		md.PlainText("")
		md.BulletList(s.items...)
		md.PlainText("")
	}
}
