// Command export writes the console illustration as PNG, SVG or PDF.
//
//	export -palette rainbow -format pdf -scale 2 -o console.pdf
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/rook-computer/handheld/internal/palette"
	"github.com/rook-computer/handheld/internal/render"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "export:", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

func run(args []string, stdout *os.File, stderr io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	paletteName := fs.String("palette", palette.Default.Name, "palette: "+strings.Join(palette.Names(), ", "))
	formatName := fs.String("format", "", "output format: png, svg or pdf (default from -o extension, else png)")
	scale := fs.Float64("scale", 1, "size multiplier")
	background := fs.String("background", "", "background color as #rrggbb; transparent when empty")
	out := fs.String("o", "", "output file; stdout when empty")
	all := fs.Bool("all", false, "write every palette into the directory given by -o")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	opts := render.Options{Scale: *scale}
	if *scale <= 0 {
		return fmt.Errorf("%w: -scale must be positive", errUsage)
	}
	if *background != "" {
		c, err := parseHexColor(*background)
		if err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		opts.Background = c
	}

	name := *formatName
	if name == "" && !*all {
		name = filepath.Ext(*out)
	}
	if name == "" {
		name = "png"
	}
	format, err := render.LookupFormat(name)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	if *all {
		if *out == "" {
			return fmt.Errorf("%w: -all needs -o <directory>", errUsage)
		}
		return exportAll(*out, format, opts, stderr)
	}

	p, err := palette.Lookup(*paletteName)
	if err != nil {
		return err
	}

	if *out == "" {
		if format.Binary && term.IsTerminal(int(stdout.Fd())) {
			return fmt.Errorf("refusing to write %s to a terminal; use -o or redirect stdout", format.Name)
		}
		w := bufio.NewWriter(stdout)
		if err := render.Export(w, format.Name, p, opts); err != nil {
			return err
		}
		return w.Flush()
	}
	return exportFile(*out, format, p, opts)
}

func exportAll(dir string, format render.Format, opts render.Options, stderr io.Writer) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, p := range palette.All() {
		path := filepath.Join(dir, "handheld-"+p.Name+format.Ext)
		if err := exportFile(path, format, p, opts); err != nil {
			return err
		}
		fmt.Fprintln(stderr, "wrote", path)
	}
	return nil
}

// exportFile writes to a temporary file next to path and renames it, so a
// failed render never leaves a truncated file behind.
func exportFile(path string, format render.Format, p palette.Palette, opts render.Options) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".handheld-export-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	w := bufio.NewWriter(tmp)
	if err := render.Export(w, format.Name, p, opts); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = tmp.Close()
		return err
	}
	// CreateTemp makes the file owner-only.
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func parseHexColor(s string) (color.RGBA, error) {
	var c color.RGBA
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return c, fmt.Errorf("color %q is not #rrggbb", s)
	}
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("color %q is not #rrggbb", s)
	}
	c.A = 0xFF
	return c, nil
}
