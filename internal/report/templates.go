package report

const markdownTemplate = `# Repository analysis: {{.Report.FullName}}

{{.Report.Description}}

| | |
|---|---|
{{- with .Report.Score}}
| Total score | {{printf "%.1f" .TotalScore}} / {{printf "%.0f" .MaxScore}} ({{.Rating}}) |
| Level | {{.Level}} |
{{- end}}
| Primary language | {{.Report.Language}} |
| Contributors | {{.Report.Collaboration.ContributorsCount}} |
| Stars | {{.Report.Stars}} |
| License | {{.Report.License}} |
| Last updated | {{.Updated}} |
| URL | {{.Report.URL}} |

## Languages
{{if .Languages}}
{{range .Languages}}- {{.Name}}: {{printf "%.1f" .Percent}}%
{{end}}{{else}}
No language data found.
{{end}}
## Key metrics

| Metric | Value |
|---|---|
{{range .Metrics}}| {{.Name}} | {{.Value}} |
{{end}}
{{- if .Components}}
## Score breakdown

| Component | Points |
|---|---|
{{range .Components}}| {{.Name}} | {{.Value}} |
{{end}}
{{- with .Report.Score.Reasoning}}
{{.}}
{{end}}
{{- end}}
{{- if .Report.Degraded}}
## Unavailable data

{{range .Report.Degraded}}- {{.}}
{{end}}
{{- end}}
{{- if .Report.Narrative}}
## AI assessment

{{.Report.Narrative}}
{{end}}`
