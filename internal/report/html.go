// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"time"

	"github.com/pdiddy/swcompare/internal/classify"
	"github.com/pdiddy/swcompare/pkg/types"
)

var htmlReport = template.Must(template.New("report").Funcs(template.FuncMap{
	"base":     filepath.Base,
	"pct":      func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
	"rowClass": rowClass,
	"evaluate": classify.Evaluate,
	"stamp":    func(t time.Time) string { return t.Local().Format(time.DateTime) },
	"feature":  func(d map[string]float64) float64 { return d[types.RegionFeatureTree] },
	"sketch":   func(d map[string]float64) float64 { return d[types.RegionSketchData] },
	"geometry": func(d map[string]float64) float64 { return d[types.RegionGeometry] },
}).Parse(htmlTemplate))

// htmlView is the data the HTML template renders.
type htmlView struct {
	Summary    types.BatchSummary
	Results    []types.ComparisonResult
	Structured []types.ComparisonResult
	Mean       float64
}

// WriteHTML renders batch as a standalone HTML page: the run summary, one
// table row per kept pair, and a section evaluating each structured pair.
func WriteHTML(w io.Writer, batch types.BatchResult) error {
	view := htmlView{Summary: batch.Summary, Results: batch.Results}
	for _, r := range batch.Results {
		view.Mean += r.Total
		if r.FileKind == types.KindSolidWorks && len(r.Details) > 0 {
			view.Structured = append(view.Structured, r)
		}
	}
	if n := len(batch.Results); n > 0 {
		view.Mean /= float64(n)
	}
	if err := htmlReport.Execute(w, view); err != nil {
		return fmt.Errorf("rendering HTML report: %w", err)
	}
	return nil
}

// rowClass shades a table row by its total.
func rowClass(total float64) string {
	switch {
	case total >= 95:
		return "high"
	case total >= 75:
		return "medium"
	case total >= 25:
		return "low"
	default:
		return "none"
	}
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>File Comparison Report</title>
<style>
body { font-family: Arial, sans-serif; margin: 20px; }
table { border-collapse: collapse; width: 100%; margin: 20px 0; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
th { background-color: #f2f2f2; }
.high { background-color: #a8e6cf; }
.medium { background-color: #dcedc1; }
.low { background-color: #ffd3b6; }
.none { background-color: #ffaaa5; }
.structured { background-color: #e8f4f8; padding: 10px; margin: 10px 0; }
</style>
</head>
<body>
<h1>File Comparison Report</h1>
<p>Run {{.Summary.RunID}} started {{stamp .Summary.StartedAt}}</p>
<ul>
<li><strong>Folder:</strong> {{.Summary.Folder}}</li>
<li><strong>Files:</strong> {{.Summary.Files}}</li>
<li><strong>Pairs kept:</strong> {{.Summary.Kept}} of {{.Summary.Pairs}}{{if .Summary.Cancelled}} (cancelled){{end}}</li>
<li><strong>Structured pairs:</strong> {{len .Structured}}</li>
<li><strong>Mean total:</strong> {{pct .Mean}}</li>
</ul>
{{if .Results}}<table>
<tr><th>File 1</th><th>File 2</th><th>Metadata</th><th>Hash</th><th>Content</th><th>Structure</th><th>Total</th><th>Category</th></tr>
{{range .Results}}<tr class="{{rowClass .Total}}"><td>{{base .File1}}</td><td>{{base .File2}}</td><td>{{pct .Metadata}}</td><td>{{pct .Hash}}</td><td>{{pct .Content}}</td><td>{{pct .Structure}}</td><td>{{pct .Total}}</td><td>{{.Category}}</td></tr>
{{end}}</table>
{{else}}<p>No pairs at or above the minimum score.</p>
{{end}}{{if .Structured}}<h2>Structured analysis</h2>
{{range .Structured}}<div class="structured">
<h3>{{base .File1}} &harr; {{base .File2}}</h3>
<p><strong>{{.Category}}</strong> ({{pct .Total}})</p>
<ul>
<li>Feature tree: {{pct (feature .Details)}}</li>
<li>Sketch data: {{pct (sketch .Details)}}</li>
<li>Geometry: {{pct (geometry .Details)}}</li>
</ul>
<ul>{{range evaluate .Total .Details}}<li>{{.}}</li>{{end}}</ul>
</div>
{{end}}{{end}}</body>
</html>
`
