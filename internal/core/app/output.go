package app

import (
	"bytes"
	"io"
	"time"

	"objcunused/internal/core/errors"
	"objcunused/internal/shared/util"
	"objcunused/internal/shared/version"
	"objcunused/internal/ui/report/formats"
)

// Data converts a result into the renderer input.
func (r Result) Data(projectRoot string) formats.Data {
	generated := r.FinishedAt
	if generated.IsZero() {
		generated = time.Now().UTC()
	}
	return formats.Data{
		MainFile:    r.MainFile,
		ProjectRoot: projectRoot,
		Version:     version.Version,
		GeneratedAt: generated,
		Events:      r.Stats.Events,
		Dropped:     r.Stats.DroppedTotal(),
		Candidates:  r.Candidates,
		Diagnostics: r.Diagnostics,
	}
}

// WriteReport renders res in the configured output format. With output.path
// set the report replaces that file and w is not written.
func (a *App) WriteReport(w io.Writer, res Result) error {
	data := res.Data(a.Config.Analysis.ProjectRoot)
	if a.Config.Output.Path == "" {
		return formats.Render(w, a.Config.Output.Format, data)
	}
	var buf bytes.Buffer
	if err := formats.Render(&buf, a.Config.Output.Format, data); err != nil {
		return err
	}
	if err := util.WriteFileAtomic(a.Config.Output.Path, buf.Bytes(), 0o644); err != nil {
		return errors.AddContext(
			errors.Wrap(err, errors.CodeInternal, "write report"),
			errors.CtxPath, a.Config.Output.Path,
		)
	}
	return nil
}
