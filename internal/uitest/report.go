package uitest

import (
	"html/template"
	"os"
	"path/filepath"
	"time"
)

var reportTpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>UI test report · {{.GeneratedAt.Format "2006-01-02 15:04:05"}}</title>
  <style>
    body { font-family: system-ui, sans-serif; max-width: 900px; margin: 2rem auto; }
    table { border-collapse: collapse; width: 100%; }
    th, td { text-align: left; padding: .5rem .75rem; border-bottom: 1px solid #ddd; }
    .pass { color: #166534; font-weight: 600; }
    .fail { color: #991b1b; font-weight: 600; }
    .err { font-family: monospace; font-size: .85em; color: #991b1b; }
  </style>
</head>
<body>
  <h1>UI test report</h1>
  <p>{{.BaseURL}} · {{.GeneratedAt.Format "2006-01-02 15:04:05"}} ·
     {{.Passed}}/{{.Total}} passed</p>
  <table>
    <thead><tr><th>#</th><th>Test</th><th>Result</th><th>Duration</th><th>Screenshot</th></tr></thead>
    <tbody>
      {{range $i, $r := .Results}}
      <tr>
        <td>{{inc $i}}</td>
        <td>{{$r.Name}}{{if $r.Err}}<div class="err">{{$r.Err}}</div>{{end}}</td>
        <td>{{if $r.Passed}}<span class="pass">PASS</span>{{else}}<span class="fail">FAIL</span>{{end}}</td>
        <td>{{$r.Duration}}</td>
        <td>{{if $r.Screenshot}}<a href="{{$r.Screenshot}}">view</a>{{end}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>
</body>
</html>
`))

type reportData struct {
	BaseURL     string
	GeneratedAt time.Time
	Results     []Result
	Passed      int
	Total       int
}

// WriteReport vuelca los resultados a un HTML con timestamp en el nombre.
// Retorna la ruta escrita.
func WriteReport(outDir, baseURL string, results []Result) (string, error) {
	now := time.Now()

	passed := 0
	rel := make([]Result, len(results))
	for i, r := range results {
		if r.Passed {
			passed++
		}
		// rutas relativas al reporte para que los links funcionen
		if r.Screenshot != "" {
			if p, err := filepath.Rel(outDir, r.Screenshot); err == nil {
				r.Screenshot = p
			}
		}
		rel[i] = r
	}

	path := filepath.Join(outDir, "report_"+now.Format("20060102_150405")+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	err = reportTpl.Execute(f, reportData{
		BaseURL:     baseURL,
		GeneratedAt: now,
		Results:     rel,
		Passed:      passed,
		Total:       len(results),
	})
	if err != nil {
		return "", err
	}
	return path, nil
}
