package mailer

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// buttonPrefix opens the call-to-action syntax: [!button|Label](URL).
const buttonPrefix = "[!button|"

// buttonStyle is inlined because most mail clients drop <style> blocks.
const buttonStyle = "display:inline-block;padding:12px 22px;background-color:#0f766e;" +
	"color:#ffffff;border-radius:6px;text-decoration:none;font-weight:600"

// KindButton is the node kind for ButtonNode.
var KindButton = ast.NewNodeKind("Button")

// ButtonNode is a call-to-action link rendered as a styled anchor.
type ButtonNode struct {
	ast.BaseInline
	URL   []byte
	Label []byte
}

func (n *ButtonNode) Kind() ast.NodeKind { return KindButton }

func (n *ButtonNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"URL":   string(n.URL),
		"Label": string(n.Label),
	}, nil)
}

type buttonParser struct{}

// NewButtonParser creates the inline parser for button syntax.
func NewButtonParser() parser.InlineParser { return buttonParser{} }

func (buttonParser) Trigger() []byte { return []byte{'['} }

func (buttonParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	rest, ok := bytes.CutPrefix(line, []byte(buttonPrefix))
	if !ok {
		return nil
	}

	label, afterLabel, ok := bytes.Cut(rest, []byte("]("))
	if !ok || bytes.IndexByte(label, ']') >= 0 {
		return nil
	}
	url, _, ok := bytes.Cut(afterLabel, []byte(")"))
	if !ok {
		return nil
	}

	block.Advance(len(buttonPrefix) + len(label) + 2 + len(url) + 1)
	return &ButtonNode{
		URL:   bytes.TrimSpace(url),
		Label: bytes.TrimSpace(label),
	}
}

type buttonRenderer struct {
	html.Config
}

// NewButtonRenderer creates the HTML renderer for ButtonNode.
func NewButtonRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &buttonRenderer{Config: html.NewConfig()}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

func (r *buttonRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindButton, r.render)
}

func (r *buttonRenderer) render(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ButtonNode)

	_, _ = w.WriteString(`<a href="`)
	if html.IsDangerousURL(n.URL) {
		_, _ = w.WriteString("#")
	} else {
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.URL, false)))
	}
	_, _ = w.WriteString(`" class="btn" style="` + buttonStyle + `">`)
	_, _ = w.Write(util.EscapeHTML(n.Label))
	_, _ = w.WriteString(`</a>`)
	return ast.WalkSkipChildren, nil
}

type buttonExtension struct{}

func (buttonExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(NewButtonParser(), 50),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewButtonRenderer(), 50),
	))
}

// NewButtonExtension returns a goldmark extension for [!button|Label](URL).
func NewButtonExtension() goldmark.Extender { return buttonExtension{} }
