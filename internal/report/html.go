package report

import (
	"fmt"
	"html/template"
	"io"

	"romdex/internal/identify"
)

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"percent": percent,
}).Parse(`<!DOCTYPE html>
<html>
<head>
    <title>romdex Identification Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        h1, h2 { color: #333; }
        table { border-collapse: collapse; width: 100%; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        th { background-color: #f2f2f2; }
        tr:nth-child(even) { background-color: #f9f9f9; }
        .success { color: green; }
        .error { color: red; }
        .warning { color: orange; }
        .summary { margin: 20px 0; padding: 10px; background-color: #f2f2f2; }
    </style>
</head>
<body>
    <h1>romdex Identification Report</h1>

    <div class="summary">
        <h2>Summary</h2>
        <p>Total files: {{.Total}}</p>
        <p>Identified: {{.Identified}} ({{percent .IdentificationRate}})</p>
        <p>Correct names: {{.CorrectNames}} ({{percent .CorrectNameRate}} of identified)</p>
    </div>

    <h2>Details</h2>
    <table>
        <tr>
            <th>File Name</th>
            <th>Identified</th>
            <th>Match Type</th>
            <th>Confidence</th>
            <th>Correct Name</th>
            <th>Name Matches</th>
        </tr>
        {{range .Results}}
        <tr>
            <td>{{.FileName}}</td>
            <td class="{{if .Identified}}success{{else}}error{{end}}">{{.Identified}}</td>
            <td>{{or .MatchType "N/A"}}</td>
            <td>{{percent .MatchConfidence}}</td>
            <td>{{or .CorrectName "N/A"}}</td>
            <td class="{{if .NameMatches}}success{{else if .Identified}}warning{{else}}error{{end}}">{{.NameMatches}}</td>
        </tr>
        {{end}}
    </table>
</body>
</html>
`))

// WriteHTML renders an identification report as a standalone HTML page.
func WriteHTML(w io.Writer, rep identify.Report) error {
	return htmlTemplate.Execute(w, rep)
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}
