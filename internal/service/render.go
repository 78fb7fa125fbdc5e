package service

import (
	"github.com/gomarkdown/markdown"
	md_html "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// RenderMarkdown renders raw markdown content to HTML. The result is what
// gets stored as the post's rendered content and fed to the reading-time
// estimate.
func RenderMarkdown(source string) string {
	opts := md_html.RendererOptions{
		Flags: md_html.CommonFlags | md_html.HrefTargetBlank,
	}
	doc := parser.NewWithExtensions(
		parser.Tables | parser.FencedCode | parser.Autolink | parser.Strikethrough |
			parser.SpaceHeadings | parser.HeadingIDs | parser.AutoHeadingIDs,
	).Parse(markdown.NormalizeNewlines([]byte(source)))
	return string(markdown.Render(doc, md_html.NewRenderer(opts)))
}
