package svgico

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/esimov/svgico/utils"
)

// validExtensions lists the source file extensions, matched case-insensitively.
var validExtensions = []string{".svg"}

// Ops describes where the pipeline reads from and writes to.
type Ops struct {
	// Src is the directory holding the SVG files. Only its direct
	// children are processed.
	Src string
	// RasterDst receives the intermediate raster image of every file.
	RasterDst string
	// IconDst receives the icon of every file.
	IconDst string
	// KeepGoing continues with the remaining files after a failure and
	// reports all failures at the end.
	KeepGoing bool
	// Out receives the progress lines. Nothing is printed when it is nil.
	Out io.Writer
	// Spinner, if set, runs while a file is being processed.
	Spinner *utils.Spinner
}

// result holds the outcome of a single file conversion.
type result struct {
	path string
	err  error
}

// Execute clears the output directories and converts every SVG file found
// in op.Src. Unless op.KeepGoing is set the first failure aborts the run.
// Files written before a failure stay on disk.
func (p *Processor) Execute(ctx context.Context, op *Ops) error {
	if err := op.prepare(); err != nil {
		return err
	}
	sources, err := listSources(op.Src)
	if err != nil {
		return err
	}

	var failed []error
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		res := op.convert(p, src)
		op.printStatus(res)
		if res.err != nil {
			if !op.KeepGoing {
				return res.err
			}
			failed = append(failed, res.err)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d files failed: %w", len(failed), len(sources), errors.Join(failed...))
	}
	op.printf("%s\n", utils.DecorateText("Done!", utils.SuccessMessage))
	return nil
}

// convert runs the pipeline for one source file.
func (op *Ops) convert(p *Processor, src string) result {
	op.printf("Processing: %s\n", utils.DecorateText(src, utils.StatusMessage))

	stem := utils.Stem(src)
	rasterPath := filepath.Join(op.RasterDst, stem+p.RasterFormat.Ext())
	iconPath := filepath.Join(op.IconDst, stem+".ico")

	if op.Spinner != nil {
		op.Spinner.SetMessage(utils.DecorateText("⚡ "+filepath.Base(src), utils.StatusMessage))
		op.Spinner.Start()
		defer op.Spinner.Stop("")
	}
	return result{path: src, err: p.Process(src, rasterPath, iconPath)}
}

// printStatus displays the failure of a file when the run continues past it.
func (op *Ops) printStatus(res result) {
	if res.err == nil || !op.KeepGoing {
		return
	}
	op.printf("%s %s\n",
		utils.DecorateText("Failed:", utils.ErrorMessage),
		utils.DecorateText(res.err.Error(), utils.DefaultMessage),
	)
}

func (op *Ops) printf(format string, args ...any) {
	if op.Out != nil {
		fmt.Fprintf(op.Out, format, args...)
	}
}

// prepare creates both output directories and empties them.
func (op *Ops) prepare() error {
	src, err := filepath.Abs(op.Src)
	if err != nil {
		return &Error{Kind: IOError, Path: op.Src, Err: err}
	}
	for _, dir := range []string{op.RasterDst, op.IconDst} {
		dst, err := filepath.Abs(dir)
		if err != nil {
			return &Error{Kind: IOError, Path: dir, Err: err}
		}
		if within(src, dst) {
			return &Error{
				Kind: IOError,
				Path: dir,
				Err:  fmt.Errorf("output directory would clear the source directory %s", op.Src),
			}
		}
	}
	for _, dir := range []string{op.RasterDst, op.IconDst} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &Error{Kind: IOError, Path: dir, Err: err}
		}
		if err := clearDir(dir); err != nil {
			return &Error{Kind: IOError, Path: dir, Err: err}
		}
	}
	return nil
}

// within reports whether path equals dir or lies inside it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// clearDir removes every file and subdirectory inside dir, keeping dir itself.
func clearDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// listSources returns the SVG files directly inside dir in lexical order.
// Subdirectories are not descended into.
func listSources(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &Error{Kind: IOError, Path: dir, Err: err}
	}
	var paths []string
	for _, e := range entries {
		if !utils.HasExt(e.Name(), validExtensions...) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if e.Type()&os.ModeSymlink != 0 {
			fi, err := os.Stat(path)
			if err != nil {
				return nil, &Error{Kind: IOError, Path: path, Err: err}
			}
			if !fi.Mode().IsRegular() {
				continue
			}
		} else if !e.Type().IsRegular() {
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}
