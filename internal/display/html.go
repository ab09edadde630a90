// Package display shows a kanji full-screen in the browser.
package display

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os/exec"
	"runtime"
	"strings"

	"github.com/verte-zerg/kanjiq/internal/fsutil"
	"github.com/verte-zerg/kanjiq/internal/model"
)

var pageTemplate = template.Must(template.New("kanji").Parse(`<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="utf-8">
<title>{{.Character}}</title>
<style>
html, body { height: 100%; margin: 0; background: #111; color: #f0f0f0; }
body { display: flex; align-items: center; justify-content: center; }
.kanji { font-size: 60vh; line-height: 1; font-family: "Noto Serif JP", "Hiragino Mincho ProN", serif; }
</style>
</head>
<body>
<div class="kanji">{{.Character}}</div>
</body>
</html>
`))

// RenderHTML renders the full-screen page for rec.
func RenderHTML(rec model.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, rec); err != nil {
		return nil, fmt.Errorf("failed to render kanji page: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteHTML renders rec to path.
func WriteHTML(path string, rec model.Record) error {
	data, err := RenderHTML(rec)
	if err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write kanji page: %w", err)
	}
	return nil
}

// Opener opens a file with an external program.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// BrowserOpener starts the platform opener, or Command when set.
type BrowserOpener struct {
	Command string
}

// Open starts the opener without waiting for it to exit.
func (b BrowserOpener) Open(ctx context.Context, path string) error {
	name, args := b.command(runtime.GOOS)
	cmd := exec.CommandContext(ctx, name, append(args, path)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func (b BrowserOpener) command(goos string) (string, []string) {
	if parts := strings.Fields(b.Command); len(parts) > 0 {
		return parts[0], parts[1:]
	}
	switch goos {
	case "windows":
		return "cmd", []string{"/c", "start", ""}
	case "darwin":
		return "open", nil
	default:
		return "xdg-open", nil
	}
}

// Viewer writes the page to HTMLPath and opens it.
type Viewer struct {
	HTMLPath string
	Opener   Opener
}

// Show implements quiz.Viewer.
func (v Viewer) Show(ctx context.Context, rec model.Record) error {
	if err := WriteHTML(v.HTMLPath, rec); err != nil {
		return err
	}
	return v.Opener.Open(ctx, v.HTMLPath)
}
