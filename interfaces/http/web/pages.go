// Package web serves the server-rendered pages of the catalog: the
// graph cloud itself plus the surrounding informational and form pages.
package web

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"datacloud/application/commands"
	cmdbus "datacloud/application/commands/bus"
	"datacloud/application/ports"
	"datacloud/application/queries"
	querybus "datacloud/application/queries/bus"
	"datacloud/domain/catalog"
	"datacloud/visualization/diagram"
	"datacloud/visualization/export"
)

// Pages renders the site. The graph cloud is embedded as inline SVG so
// the page works without any client-side rendering.
type Pages struct {
	repo       ports.EntryRepository
	diagram    *diagram.Diagram
	exporter   *export.Exporter
	commandBus *cmdbus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger

	layout *template.Template
}

// NewPages creates the page renderer.
func NewPages(repo ports.EntryRepository, d *diagram.Diagram, exporter *export.Exporter, cb *cmdbus.CommandBus, qb *querybus.QueryBus, logger *zap.Logger) *Pages {
	return &Pages{
		repo:       repo,
		diagram:    d,
		exporter:   exporter,
		commandBus: cb,
		queryBus:   qb,
		logger:     logger,
		layout:     template.Must(template.New("layout").Parse(layoutPage)),
	}
}

type pageData struct {
	Title   string
	Active  string
	Content template.HTML
}

func (p *Pages) render(w http.ResponseWriter, title, active string, content template.HTML) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := p.layout.Execute(w, pageData{Title: title, Active: active, Content: content}); err != nil {
		p.logger.Error("page render failed", zap.String("page", active), zap.Error(err))
	}
}

func (p *Pages) refreshDiagram(r *http.Request) error {
	snap, err := p.repo.Snapshot(r.Context())
	if err != nil {
		return err
	}
	if err := p.diagram.SetSnapshot(snap); err != nil {
		return err
	}
	_, err = p.diagram.Render()
	return err
}

// Cloud serves the landing page with the inline graph cloud. It is also
// the catch-all target for unknown paths.
func (p *Pages) Cloud(w http.ResponseWriter, r *http.Request) {
	if err := p.refreshDiagram(r); err != nil {
		p.logger.Error("cloud page failed", zap.Error(err))
		http.Error(w, "could not build graph", http.StatusInternalServerError)
		return
	}

	var svg bytes.Buffer
	if err := p.exporter.SVG(r.Context(), &svg); err != nil {
		p.logger.Error("cloud page svg failed", zap.Error(err))
		http.Error(w, "could not render graph", http.StatusInternalServerError)
		return
	}

	var b bytes.Buffer
	b.WriteString(`<h1>Data Catalog Cloud</h1>`)
	b.WriteString(`<p class="hint">Each bubble is a dataset. Bubble size follows how often other datasets reference it. Download the cloud as <a href="/api/v1/graph/export/svg">SVG</a>, <a href="/api/v1/graph/export/png">PNG</a>, or <a href="/api/v1/graph/export/pdf">PDF</a>.</p>`)
	b.WriteString(`<div class="cloud">`)
	b.Write(svg.Bytes())
	b.WriteString(`</div>`)
	p.render(w, "Cloud", "cloud", template.HTML(b.String()))
}

// Fairness serves the FAIR principles page.
func (p *Pages) Fairness(w http.ResponseWriter, r *http.Request) {
	p.render(w, "FAIR Principles", "fairness", template.HTML(fairnessContent))
}

// AddDataset serves the dataset registration form. The form posts to
// the JSON API.
func (p *Pages) AddDataset(w http.ResponseWriter, r *http.Request) {
	var b bytes.Buffer
	b.WriteString(`<h1>Register a Dataset</h1>`)
	b.WriteString(`<form method="post" action="/add-dataset" class="entry-form">`)
	b.WriteString(`<label>Title <input name="title" required maxlength="200"></label>`)
	b.WriteString(`<label>Category <select name="category">`)
	for _, c := range catalog.Categories {
		b.WriteString(`<option>`)
		template.HTMLEscape(&b, []byte(string(c)))
		b.WriteString(`</option>`)
	}
	b.WriteString(`</select></label>`)
	b.WriteString(`<label>URL <input name="url" type="url" placeholder="https://..."></label>`)
	b.WriteString(`<label>Description <textarea name="description" rows="4"></textarea></label>`)
	b.WriteString(`<label>Tags (comma separated) <input name="tags"></label>`)
	b.WriteString(`<button type="submit">Register</button>`)
	b.WriteString(`</form>`)
	p.render(w, "Add Dataset", "add-dataset", template.HTML(b.String()))
}

// SubmitDataset handles the registration form and redirects back to the
// cloud on success.
func (p *Pages) SubmitDataset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	var tags []string
	for _, t := range strings.Split(r.PostFormValue("tags"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	cmd := &commands.AddEntryCommand{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Category:    r.PostFormValue("category"),
		URL:         strings.TrimSpace(r.PostFormValue("url")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		Tags:        tags,
	}
	if err := p.commandBus.Send(r.Context(), cmd); err != nil {
		p.logger.Warn("dataset form rejected", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Search serves the search page, executing the query server-side when a
// term or category is present.
func (p *Pages) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	var b bytes.Buffer
	b.WriteString(`<h1>Search the Catalog</h1>`)
	b.WriteString(`<form method="get" action="/search" class="search-form">`)
	b.WriteString(`<input name="q" value="`)
	template.HTMLEscape(&b, []byte(term))
	b.WriteString(`" placeholder="title, description, or tag">`)
	b.WriteString(`<select name="category"><option value="">All categories</option>`)
	for _, c := range catalog.Categories {
		b.WriteString(`<option`)
		if string(c) == category {
			b.WriteString(` selected`)
		}
		b.WriteString(`>`)
		template.HTMLEscape(&b, []byte(string(c)))
		b.WriteString(`</option>`)
	}
	b.WriteString(`</select><button type="submit">Search</button></form>`)

	if term != "" || category != "" {
		result, err := p.queryBus.Ask(r.Context(), queries.SearchEntriesQuery{Term: term, Category: category})
		if err != nil {
			p.logger.Error("search page failed", zap.Error(err))
			http.Error(w, "search failed", http.StatusInternalServerError)
			return
		}
		res := result.(*queries.SearchEntriesResult)
		if len(res.Entries) == 0 {
			b.WriteString(`<p class="hint">No datasets match.</p>`)
		}
		b.WriteString(`<ul class="results">`)
		for _, e := range res.Entries {
			b.WriteString(`<li><strong>`)
			template.HTMLEscape(&b, []byte(e.Title))
			b.WriteString(`</strong> <span class="badge" style="background:`)
			b.WriteString(e.Category.Color())
			b.WriteString(`">`)
			template.HTMLEscape(&b, []byte(string(e.Category)))
			b.WriteString(`</span><br>`)
			template.HTMLEscape(&b, []byte(e.Description))
			b.WriteString(`</li>`)
		}
		b.WriteString(`</ul>`)
	}
	p.render(w, "Search", "search", template.HTML(b.String()))
}

// Dashboard serves aggregate statistics about the catalog.
func (p *Pages) Dashboard(w http.ResponseWriter, r *http.Request) {
	result, err := p.queryBus.Ask(r.Context(), queries.GetDashboardQuery{})
	if err != nil {
		p.logger.Error("dashboard page failed", zap.Error(err))
		http.Error(w, "dashboard failed", http.StatusInternalServerError)
		return
	}
	res := result.(*queries.GetDashboardResult)

	dash := template.Must(template.New("dashboard").Parse(dashboardContent))
	var b bytes.Buffer
	if err := dash.Execute(&b, res); err != nil {
		p.logger.Error("dashboard render failed", zap.Error(err))
		http.Error(w, "dashboard failed", http.StatusInternalServerError)
		return
	}
	p.render(w, "Dashboard", "dashboard", template.HTML(b.String()))
}

// About serves the project description page.
func (p *Pages) About(w http.ResponseWriter, r *http.Request) {
	p.render(w, "About", "about", template.HTML(aboutContent))
}

const layoutPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}} - Data Catalog</title>
<style>
body { font-family: "Helvetica Neue", Arial, sans-serif; margin: 0; color: #222; }
nav { background: #1f77b4; padding: 0.6em 1.2em; }
nav a { color: #fff; margin-right: 1.2em; text-decoration: none; font-weight: 500; }
nav a.active { text-decoration: underline; }
main { max-width: 1280px; margin: 1.5em auto; padding: 0 1.2em; }
.hint { color: #666; }
.cloud svg { max-width: 100%; height: auto; border: 1px solid #ddd; }
.entry-form label, .search-form input, .search-form select { display: block; margin: 0.6em 0; }
.entry-form input, .entry-form select, .entry-form textarea { width: 100%; max-width: 32em; }
.search-form { display: flex; gap: 0.6em; }
.search-form input, .search-form select { display: inline-block; margin: 0; }
.results li { margin: 0.8em 0; }
.badge { color: #fff; border-radius: 3px; padding: 0.1em 0.5em; font-size: 0.85em; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ddd; padding: 0.4em 0.8em; text-align: left; }
</style>
</head>
<body>
<nav>
<a href="/">Cloud</a><a href="/search">Search</a><a href="/add-dataset">Add Dataset</a><a href="/dashboard">Dashboard</a><a href="/fairness">FAIR</a><a href="/about">About</a>
</nav>
<main>
{{.Content}}
</main>
</body>
</html>
`

const dashboardContent = `<h1>Catalog Dashboard</h1>
<p>{{.TotalEntries}} datasets, {{.TotalLinks}} links, {{.RenderedNodes}} nodes in the cloud (density {{printf "%.3f" .Density}}).</p>
{{if .Hub}}<p>Most connected dataset: <strong>{{.Hub}}</strong> with {{.HubDegree}} links.</p>{{end}}
<h2>Datasets per category</h2>
<table>
<tr><th>Category</th><th>Datasets</th></tr>
{{range .Categories}}<tr><td>{{.Category}}</td><td>{{.Count}}</td></tr>
{{end}}</table>
<h2>Degree distribution</h2>
<table>
<tr><th>Links per dataset</th><th>Datasets</th></tr>
{{range .DegreeDistribution}}<tr><td>{{.Degree}}</td><td>{{.Count}}</td></tr>
{{end}}</table>
`

const fairnessContent = `<h1>FAIR Data Principles</h1>
<p>Datasets in this catalog are registered following the FAIR principles:</p>
<ul>
<li><strong>Findable</strong>: every dataset carries a stable identifier, a title, a category, and searchable tags.</li>
<li><strong>Accessible</strong>: datasets with a public endpoint link straight to it from the cloud.</li>
<li><strong>Interoperable</strong>: categories and tags use a shared vocabulary across the catalog.</li>
<li><strong>Reusable</strong>: descriptions document provenance and intended use.</li>
</ul>
<p>Registering a dataset does not move any data. The catalog stores metadata only.</p>
`

const aboutContent = `<h1>About</h1>
<p>This catalog maps the datasets of the network and how they reference each other. The cloud view lays out every dataset as a bubble, sized by how many other datasets point to it and colored by category.</p>
<p>The layout is computed once per snapshot of the catalog and frozen, so the picture is stable across visits and exports.</p>
`
