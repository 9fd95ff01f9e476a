package builder

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// The single kind→template map shared by the editor preview endpoint and
// the public render route. Both call RenderPage, so the two surfaces
// cannot drift apart.
var blockTemplates = template.Must(template.New("blocks").Parse(`
{{define "header"}}<header class="lp-header"><div class="lp-brand">{{.Title}}</div><nav>{{range .Links}}<a href="{{.Href}}">{{.Label}}</a>{{end}}</nav></header>{{end}}

{{define "hero"}}<section class="lp-hero"><h1>{{.Title}}</h1><p>{{.Subtitle}}</p><a class="lp-btn lp-btn-primary" href="{{.CTAHref}}">{{.CTA}}</a></section>{{end}}

{{define "features"}}<section class="lp-features"><h2>{{.Title}}</h2><div class="lp-grid">{{range .Items}}<div class="lp-feature" data-icon="{{.Icon}}"><h3>{{.Title}}</h3><p>{{.Description}}</p></div>{{end}}</div></section>{{end}}

{{define "testimonials"}}<section class="lp-testimonials"><h2>{{.Title}}</h2>{{range .Items}}<blockquote><p>{{.Quote}}</p><cite>{{.Author}}, {{.Role}}</cite></blockquote>{{end}}</section>{{end}}

{{define "pricing"}}<section class="lp-pricing"><h2>{{.Title}}</h2><div class="lp-grid">{{range .Tiers}}<div class="lp-tier"><h3>{{.Name}}</h3><div class="lp-price">{{.Price}}<span>/{{.Period}}</span></div><ul>{{range .Features}}<li>{{.}}</li>{{end}}</ul><a class="lp-btn" href="#">{{.CTA}}</a></div>{{end}}</div></section>{{end}}

{{define "faq"}}<section class="lp-faq"><h2>{{.Title}}</h2>{{range .Items}}<details><summary>{{.Question}}</summary><p>{{.Answer}}</p></details>{{end}}</section>{{end}}

{{define "contact"}}<section class="lp-contact"><h2>{{.Title}}</h2><p>{{.Subtitle}}</p><form action="mailto:{{.Email}}" method="post"><button class="lp-btn" type="submit">{{.ButtonLabel}}</button></form></section>{{end}}

{{define "image"}}<figure class="lp-image"><img src="{{.Src}}" alt="{{.Alt}}">{{if .Caption}}<figcaption>{{.Caption}}</figcaption>{{end}}</figure>{{end}}

{{define "video"}}<section class="lp-video"><h3>{{.Title}}</h3><iframe src="{{.URL}}" allowfullscreen></iframe></section>{{end}}

{{define "text"}}<section class="lp-text"><p>{{.Text}}</p></section>{{end}}

{{define "button"}}<div class="lp-button"><a class="lp-btn lp-btn-{{.Variant}}" href="{{.Href}}">{{.Label}}</a></div>{{end}}

{{define "customHtml"}}<div class="lp-custom">{{.Raw}}</div>{{end}}

{{define "footer"}}<footer class="lp-footer"><nav>{{range .Links}}<a href="{{.Href}}">{{.Label}}</a>{{end}}</nav><p>{{.Copyright}}</p></footer>{{end}}

{{define "authorBox"}}<aside class="lp-author"><img src="{{.Avatar}}" alt="{{.Name}}"><div><h4>{{.Name}}</h4><p>{{.Bio}}</p></div></aside>{{end}}

{{define "cta"}}<section class="lp-cta"><h2>{{.Title}}</h2><p>{{.Subtitle}}</p><a class="lp-btn lp-btn-primary" href="{{.ButtonHref}}">{{.ButtonLabel}}</a></section>{{end}}

{{define "page"}}<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>{{.Title}}</title></head>
<body>{{range .Blocks}}{{.}}{{end}}</body>
</html>{{end}}
`))

type customHTMLView struct {
	Raw template.HTML
}

// RenderComponent renders one component to an HTML fragment. Unknown
// kinds and undecodable props render as an empty string.
func RenderComponent(kind string, props []byte) (template.HTML, error) {
	content, ok := DecodeContent(kind, props)
	if !ok {
		return "", nil
	}

	var data any = content
	if c, isCustom := content.(CustomHTMLContent); isCustom {
		// custom HTML is intentionally rendered unescaped; inputs pass
		// through the sanitizing middleware on the way in
		data = customHTMLView{Raw: template.HTML(c.HTML)}
	}

	var buf bytes.Buffer
	if err := blockTemplates.ExecuteTemplate(&buf, kind, data); err != nil {
		return "", fmt.Errorf("render %s: %w", kind, err)
	}
	return template.HTML(strings.TrimSpace(buf.String())), nil
}

type pageView struct {
	Title  string
	Blocks []template.HTML
}

// RenderPage renders a full page document (components already ordered by
// sort_index) into an HTML document.
func RenderPage(page *Page) ([]byte, error) {
	view := pageView{Title: page.Name}
	if view.Title == "" {
		view.Title = page.Slug
	}

	for _, c := range page.Components {
		frag, err := RenderComponent(c.Type, c.Props)
		if err != nil {
			return nil, err
		}
		if frag == "" {
			continue
		}
		view.Blocks = append(view.Blocks, frag)
	}

	var buf bytes.Buffer
	if err := blockTemplates.ExecuteTemplate(&buf, "page", view); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
