// Package preview renders sample file names the way a terminal would color
// them under a dircolors document.
package preview

import (
	"io"
	"strings"

	"dcedit/internal/color"
	"dcedit/internal/dircolors"
	"dcedit/pkg/types"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const title = "Terminal Preview (simulated)"

// Options controls a preview
type Options struct {
	Header     bool
	Background string // hex panel background; empty for none
	Profile    termenv.Profile
}

// DefaultOptions uses the color profile detected from the environment
func DefaultOptions() Options {
	return Options{
		Header:     true,
		Background: "#1a1a1a",
		Profile:    termenv.EnvColorProfile(),
	}
}

// DefaultSamples returns the built-in sample listing
func DefaultSamples() []types.SampleFile {
	return []types.SampleFile{
		{Icon: "📁", Name: "Documents", Key: "DIR"},
		{Icon: "📁", Name: "Pictures", Key: "DIR"},
		{Icon: "📁", Name: "Downloads", Key: "DIR"},
		{Icon: "📄", Name: "readme.txt", Key: ".txt"},
		{Icon: "📄", Name: "config.json", Key: ".json"},
		{Icon: "📄", Name: "document.pdf", Key: ".pdf"},
		{Icon: "📄", Name: "notes.md", Key: ".md"},
		{Icon: "🖼️", Name: "photo.jpg", Key: ".jpg"},
		{Icon: "🖼️", Name: "portrait.jpeg", Key: ".jpeg"},
		{Icon: "🖼️", Name: "image.png", Key: ".png"},
		{Icon: "🖼️", Name: "icon.gif", Key: ".gif"},
		{Icon: "🖼️", Name: "diagram.svg", Key: ".svg"},
		{Icon: "🖼️", Name: "texture.bmp", Key: ".bmp"},
		{Icon: "🎵", Name: "song.mp3", Key: ".mp3"},
		{Icon: "🎵", Name: "audio.wav", Key: ".wav"},
		{Icon: "🎵", Name: "music.flac", Key: ".flac"},
		{Icon: "🎵", Name: "track.ogg", Key: ".ogg"},
		{Icon: "🎬", Name: "movie.mp4", Key: ".mp4"},
		{Icon: "🎬", Name: "video.avi", Key: ".avi"},
		{Icon: "🎬", Name: "film.mkv", Key: ".mkv"},
		{Icon: "📦", Name: "archive.zip", Key: ".zip"},
		{Icon: "📦", Name: "backup.tar", Key: ".tar"},
		{Icon: "📦", Name: "data.gz", Key: ".gz"},
		{Icon: "📦", Name: "files.bz2", Key: ".bz2"},
		{Icon: "⚡", Name: "script.py", Key: ".py"},
		{Icon: "⚡", Name: "program.js", Key: ".js"},
		{Icon: "⚡", Name: "webpage.html", Key: ".html"},
		{Icon: "⚡", Name: "styles.css", Key: ".css"},
		{Icon: "⚡", Name: "server.php", Key: ".php"},
		{Icon: "🔗", Name: "link", Key: "LINK"},
		{Icon: "💔", Name: "broken_link", Key: "ORPHAN"},
		{Icon: "🏃", Name: "executable", Key: "EXEC"},
	}
}

// Renderer turns SGR strings into lipgloss styles for one color profile
type Renderer struct {
	r    *lipgloss.Renderer
	opts Options
}

// NewRenderer creates a renderer. Output is never written directly; the
// profile alone decides which escape sequences are produced.
func NewRenderer(opts Options) *Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(opts.Profile)
	return &Renderer{r: r, opts: opts}
}

// Style decodes sgr into a lipgloss style
func (p *Renderer) Style(sgr string) lipgloss.Style {
	code := color.Decode(sgr)
	s := p.r.NewStyle()
	if code.Foreground != nil {
		s = s.Foreground(lipgloss.Color(code.Foreground.Hex()))
	}
	if code.Background != nil {
		s = s.Background(lipgloss.Color(code.Background.Hex()))
	}
	for _, st := range code.Styles {
		switch st {
		case color.StyleBold:
			s = s.Bold(true)
		case color.StyleDim:
			s = s.Faint(true)
		case color.StyleItalic:
			s = s.Italic(true)
		case color.StyleUnderline:
			s = s.Underline(true)
		case color.StyleBlink:
			s = s.Blink(true)
		case color.StyleReverse:
			s = s.Reverse(true)
		case color.StyleStrikethrough:
			s = s.Strikethrough(true)
		}
	}
	return s
}

// Line renders one sample. Samples whose key has no entry are left plain.
func (p *Renderer) Line(doc *dircolors.Document, sample types.SampleFile) string {
	entry, ok := doc.Get(sample.KeyFor())
	if !ok {
		return sample.Icon + "  " + sample.Name
	}
	style := p.Style(entry.SGR)
	if _, none := style.GetBackground().(lipgloss.NoColor); none && p.opts.Background != "" {
		style = style.Background(lipgloss.Color(p.opts.Background))
	}
	return sample.Icon + "  " + style.Render(sample.Name)
}

// Render renders every sample, one per line
func (p *Renderer) Render(doc *dircolors.Document, samples []types.SampleFile) string {
	var b strings.Builder
	if p.opts.Header {
		b.WriteString(title + "\n")
		b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
	}
	for _, s := range samples {
		b.WriteString(p.Line(doc, s))
		b.WriteString("\n")
	}
	return b.String()
}

// Render is a shorthand for NewRenderer(opts).Render(doc, samples)
func Render(doc *dircolors.Document, samples []types.SampleFile, opts Options) string {
	return NewRenderer(opts).Render(doc, samples)
}
