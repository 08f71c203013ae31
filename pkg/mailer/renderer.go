package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ksmdental/clinic/pkg/sanitizer"
)

// Renderer turns markdown templates with YAML front matter into a plain-text
// body and an HTML body wrapped in a layout.
//
// Each template is compiled twice. The text pass prints values verbatim and
// formats helpers for reading in a mail client; the markdown pass escapes
// values so user input can never inject markdown or HTML. Template authors
// use the same helpers in both:
//
//	{{b "Name:"}} {{esc .Name}}        bold label, escaped value
//	{{link .Phone .PhoneURL}}          tel:/mailto: link
//	{{button "Call us" .PhoneURL}}     call-to-action button
type Renderer struct {
	fs fs.FS
	md goldmark.Markdown

	templateCache map[string]*cachedTemplate
	layoutCache   map[string]*template.Template
	templateDir   string
	layoutDir     string

	mu sync.RWMutex
}

type cachedTemplate struct {
	metadata map[string]any
	text     *texttemplate.Template
	markdown *texttemplate.Template
}

// RendererConfig configures the renderer.
type RendererConfig struct {
	TemplateDir string // Default: "."
	LayoutDir   string // Default: "layouts"
}

// NewRenderer creates a new renderer with default config.
func NewRenderer(filesystem fs.FS) *Renderer {
	return NewRendererWithConfig(filesystem, RendererConfig{})
}

// NewRendererWithConfig creates a new renderer with custom config.
func NewRendererWithConfig(filesystem fs.FS, opts RendererConfig) *Renderer {
	if opts.TemplateDir == "" {
		opts.TemplateDir = "."
	}
	if opts.LayoutDir == "" {
		opts.LayoutDir = "layouts"
	}

	return &Renderer{
		fs:          filesystem,
		templateDir: opts.TemplateDir,
		layoutDir:   opts.LayoutDir,
		md: goldmark.New(
			goldmark.WithExtensions(NewButtonExtension()),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		templateCache: make(map[string]*cachedTemplate),
		layoutCache:   make(map[string]*template.Template),
	}
}

// RenderResult contains the rendered bodies and the template metadata.
type RenderResult struct {
	Metadata map[string]any
	HTML     string
	Text     string
}

// Render executes templateName with data and wraps the HTML in layout.
// The layout receives Content, Metadata and Data.
func (r *Renderer) Render(layout, templateName string, data any) (*RenderResult, error) {
	cached, err := r.getTemplate(templateName)
	if err != nil {
		return nil, err
	}

	var text bytes.Buffer
	if err := cached.text.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("%w: failed to execute template: %v", ErrRenderFailed, err)
	}

	var markdown bytes.Buffer
	if err := cached.markdown.Execute(&markdown, data); err != nil {
		return nil, fmt.Errorf("%w: failed to execute template: %v", ErrRenderFailed, err)
	}

	var content bytes.Buffer
	if err := r.md.Convert(markdown.Bytes(), &content); err != nil {
		return nil, fmt.Errorf("%w: failed to convert markdown: %v", ErrRenderFailed, err)
	}

	layoutTmpl, err := r.getLayout(layout)
	if err != nil {
		return nil, err
	}

	var final bytes.Buffer
	err = layoutTmpl.Execute(&final, map[string]any{
		"Content":  template.HTML(sanitizer.SanitizeEmailHTML(content.String())), //nolint:gosec // sanitized above
		"Metadata": cached.metadata,
		"Data":     data,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute layout: %v", ErrRenderFailed, err)
	}

	return &RenderResult{
		HTML:     final.String(),
		Text:     strings.TrimSpace(text.String()) + "\n",
		Metadata: cached.metadata,
	}, nil
}

// RenderString executes src as a one-off text template, using the text-pass
// helpers. Subjects are rendered this way.
func (r *Renderer) RenderString(src string, data any) (string, error) {
	tmpl, err := texttemplate.New("inline").Funcs(textFuncs).Parse(src)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return buf.String(), nil
}

func (r *Renderer) getTemplate(name string) (*cachedTemplate, error) {
	r.mu.RLock()
	cached, ok := r.templateCache[name]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.templateCache[name]; ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fs, path.Join(r.templateDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
	}

	parsed, err := ParseTemplate(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	text, err := texttemplate.New(name).Funcs(textFuncs).Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse template body: %v", ErrRenderFailed, err)
	}
	markdown, err := texttemplate.New(name).Funcs(markdownFuncs).Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse template body: %v", ErrRenderFailed, err)
	}

	cached = &cachedTemplate{metadata: parsed.Metadata, text: text, markdown: markdown}
	r.templateCache[name] = cached
	return cached, nil
}

func (r *Renderer) getLayout(name string) (*template.Template, error) {
	r.mu.RLock()
	cached, ok := r.layoutCache[name]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.layoutCache[name]; ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fs, path.Join(r.layoutDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
	}

	layoutTmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse layout: %v", ErrRenderFailed, err)
	}

	r.layoutCache[name] = layoutTmpl
	return layoutTmpl, nil
}
