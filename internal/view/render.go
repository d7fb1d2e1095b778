package view

import (
	"bytes"
	"html/template"
	"log/slog"

	"foundry-catchup/internal/domain/entity"
)

// Fragment templates. All interpolated values pass through html/template
// escaping; links open a new browsing context without a reference back to
// the opener.
const fragmentSrc = `
{{define "loading"}}<p class="loading">Loading…</p>{{end}}

{{define "error"}}<p class="error">Failed to load: {{.}}</p>{{end}}

{{define "source_entry"}}<li>[{{.From}}] <a href="{{.URL}}" target="_blank" rel="noopener noreferrer">{{.URL}}</a></li>{{end}}

{{define "source_link"}}<li><a href="{{.}}" target="_blank" rel="noopener noreferrer">{{.}}</a></li>{{end}}

{{define "content_item"}}<article class="item"><h3>{{.Headline}}</h3><p class="summary">{{.Summary}}</p>{{if .Why}}<p class="why">Why it matters: {{.Why}}</p>{{end}}{{if .Link}}<p class="link"><a href="{{.Link}}" target="_blank" rel="noopener noreferrer">{{.LinkLabel}}</a></p>{{end}}</article>{{end}}
`

var fragments = template.Must(template.New("fragments").Parse(fragmentSrc))

// itemView is the data handed to the content_item template. Headline already
// carries the "Untitled" default; Why and Link render as whole optional
// blocks while Summary always renders, empty or not.
type itemView struct {
	Headline  string
	Summary   string
	Why       string
	Link      string
	LinkLabel string
}

func renderFragment(name string, data any) template.HTML {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		// Cannot happen with a buffer writer; log and render nothing.
		slog.Default().Error("fragment render failed",
			slog.String("fragment", name),
			slog.Any("error", err))
		return ""
	}
	return template.HTML(buf.String())
}

func loadingFragment() template.HTML {
	return renderFragment("loading", nil)
}

func errorFragment(desc string) template.HTML {
	return renderFragment("error", desc)
}

// RenderSourceEntry renders one aggregated source as "[from] url" with a link.
func RenderSourceEntry(c entity.Citation) template.HTML {
	return renderFragment("source_entry", c)
}

// RenderSourceLink renders one bare citation URL as an unlabeled link.
func RenderSourceLink(url string) template.HTML {
	return renderFragment("source_link", url)
}

// RenderContentItem renders one feed item. linkLabel is the anchor text used
// when the item carries a link ("Open article" for news, "Read documentation"
// for improvements).
func RenderContentItem(item entity.ContentItem, linkLabel string) template.HTML {
	return renderFragment("content_item", itemView{
		Headline:  item.DisplayHeadline(),
		Summary:   item.Summary,
		Why:       item.Why,
		Link:      item.Link,
		LinkLabel: linkLabel,
	})
}
