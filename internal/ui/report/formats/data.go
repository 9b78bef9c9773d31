package formats

import (
	"fmt"
	"io"
	"strings"
	"time"

	"objcunused/internal/core/errors"
	"objcunused/internal/engine/report"
)

// Data is everything a renderer needs about one completed run.
type Data struct {
	MainFile    string
	ProjectRoot string
	Version     string
	GeneratedAt time.Time
	Events      int
	Dropped     int
	Candidates  int
	Diagnostics []report.Diagnostic
}

const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatSARIF    = "sarif"
	FormatMarkdown = "markdown"
)

// Render writes data to w in the named format.
func Render(w io.Writer, format string, data Data) error {
	var (
		out []byte
		err error
	)
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return WriteText(w, data)
	case FormatJSON:
		out, err = GenerateJSON(data)
	case FormatSARIF:
		out, err = GenerateSARIF(data.ProjectRoot, data)
	case FormatMarkdown:
		var md string
		md, err = NewMarkdownGenerator().Generate(data)
		out = []byte(md)
	default:
		return errors.New(errors.CodeNotSupported, fmt.Sprintf("unsupported output format %q", format))
	}
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
