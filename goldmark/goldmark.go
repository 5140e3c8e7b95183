// Package goldmark renders chat message markdown for the terminal using
// goldmark for parsing and lipgloss for styling.
package goldmark

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chatroom"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Renderer turns message text into styled lines. It is safe for concurrent
// use once created.
type Renderer struct {
	parser parser.Parser

	bold   lipgloss.Style
	italic lipgloss.Style
	code   lipgloss.Style
	accent lipgloss.Style
	muted  lipgloss.Style
	link   lipgloss.Style
}

// New returns a Renderer styled with theme.
func New(theme chatroom.Theme) *Renderer {
	return &Renderer{
		parser: goldmark.DefaultParser(),
		bold:   lipgloss.NewStyle().Bold(true),
		italic: lipgloss.NewStyle().Italic(true),
		code:   lipgloss.NewStyle().Background(ansiColor(theme.CodeBg)).Bold(true),
		accent: lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Bold(true),
		muted:  lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
		link:   lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Underline(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

// Render returns src as styled text wrapped to width. Code blocks keep their
// lines as written. A non-positive width means 80 columns.
func (r *Renderer) Render(src string, width int) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	source := []byte(src)
	doc := r.parser.Parse(text.NewReader(source))

	var blocks []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if b := r.block(n, source, width, true); b != "" {
			blocks = append(blocks, b)
		}
	}
	return strings.Join(blocks, "\n\n")
}

// Plain returns src with markdown syntax removed and whitespace collapsed
// to single spaces. Used for one-line previews and the clipboard.
func (r *Renderer) Plain(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	source := []byte(src)
	doc := r.parser.Parse(text.NewReader(source))

	var parts []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if b := r.block(n, source, 0, false); b != "" {
			parts = append(parts, b)
		}
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// block renders one block node. With styled false no ANSI styling or
// wrapping is applied.
func (r *Renderer) block(n ast.Node, source []byte, width int, styled bool) string {
	switch n := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return r.wrap(r.inline(n, source, styled), width, styled)

	case *ast.Heading:
		s := r.inline(n, source, styled)
		if styled {
			s = r.accent.Render(s)
		}
		return r.wrap(s, width, styled)

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		var lines []string
		if fenced, ok := n.(*ast.FencedCodeBlock); ok && styled {
			if lang := string(fenced.Language(source)); lang != "" {
				lines = append(lines, r.muted.Render(lang))
			}
		}
		segs := n.Lines()
		for i := 0; i < segs.Len(); i++ {
			seg := segs.At(i)
			line := strings.TrimRight(string(seg.Value(source)), "\n")
			if styled {
				line = r.muted.Render("│") + " " + line
			}
			lines = append(lines, line)
		}
		return strings.Join(lines, "\n")

	case *ast.Blockquote:
		var inner []string
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if b := r.block(c, source, max(width-2, 10), styled); b != "" {
				inner = append(inner, b)
			}
		}
		body := strings.Join(inner, "\n")
		if !styled {
			return body
		}
		bar := r.muted.Render("▏")
		lines := strings.Split(body, "\n")
		for i, l := range lines {
			lines[i] = bar + " " + l
		}
		return strings.Join(lines, "\n")

	case *ast.List:
		return r.list(n, source, width, styled, 0)

	case *ast.ThematicBreak:
		if !styled {
			return ""
		}
		return r.muted.Render(strings.Repeat("─", min(width, 20)))

	case *ast.HTMLBlock:
		var buf bytes.Buffer
		segs := n.Lines()
		for i := 0; i < segs.Len(); i++ {
			seg := segs.At(i)
			buf.Write(seg.Value(source))
		}
		return strings.TrimRight(buf.String(), "\n")

	default:
		var parts []string
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if b := r.block(c, source, width, styled); b != "" {
				parts = append(parts, b)
			}
		}
		return strings.Join(parts, "\n")
	}
}

func (r *Renderer) list(n *ast.List, source []byte, width int, styled bool, depth int) string {
	var out []string
	num := n.Start
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		marker := "• "
		if n.IsOrdered() {
			marker = strconv.Itoa(num) + ". "
			num++
		}
		prefix := strings.Repeat("  ", depth) + marker
		var body []string
		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			if sub, ok := ic.(*ast.List); ok {
				body = append(body, r.list(sub, source, width, styled, depth+1))
				continue
			}
			b := r.block(ic, source, max(width-len(prefix), 10), styled)
			if b == "" {
				continue
			}
			if !styled {
				body = append(body, b)
				continue
			}
			lines := strings.Split(b, "\n")
			pad := strings.Repeat(" ", len(prefix))
			for i := range lines {
				if i == 0 && len(body) == 0 {
					lines[i] = prefix + lines[i]
				} else {
					lines[i] = pad + lines[i]
				}
			}
			body = append(body, strings.Join(lines, "\n"))
		}
		out = append(out, body...)
	}
	if styled {
		return strings.Join(out, "\n")
	}
	return strings.Join(out, " ")
}

func (r *Renderer) wrap(s string, width int, styled bool) string {
	if !styled || width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}

func (r *Renderer) inline(n ast.Node, source []byte, styled bool) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		r.writeInline(c, source, styled, &buf)
	}
	return buf.String()
}

func (r *Renderer) writeInline(n ast.Node, source []byte, styled bool, buf *bytes.Buffer) {
	style := func(st lipgloss.Style, s string) string {
		if !styled {
			return s
		}
		return st.Render(s)
	}
	switch n := n.(type) {
	case *ast.Text:
		buf.Write(n.Segment.Value(source))
		switch {
		case n.HardLineBreak() && styled:
			buf.WriteByte('\n')
		case n.SoftLineBreak(), n.HardLineBreak():
			buf.WriteByte(' ')
		}

	case *ast.String:
		buf.Write(n.Value)

	case *ast.Emphasis:
		inner := r.inline(n, source, styled)
		if n.Level == 1 {
			buf.WriteString(style(r.italic, inner))
		} else {
			buf.WriteString(style(r.bold, inner))
		}

	case *ast.CodeSpan:
		buf.WriteString(style(r.code, r.inline(n, source, false)))

	case *ast.Link:
		inner := r.inline(n, source, styled)
		buf.WriteString(style(r.link, inner))
		if styled {
			buf.WriteString(" " + r.muted.Render("("+string(n.Destination)+")"))
		}

	case *ast.AutoLink:
		buf.WriteString(style(r.link, string(n.URL(source))))

	case *ast.Image:
		buf.WriteString(style(r.link, r.inline(n, source, false)))

	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			buf.Write(seg.Value(source))
		}

	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			r.writeInline(c, source, styled, buf)
		}
	}
}
