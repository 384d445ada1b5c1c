package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/npillmayer/blockdom/config"
	"github.com/npillmayer/blockdom/engine"
	"github.com/npillmayer/blockdom/syntax"
	"github.com/spf13/cobra"
)

// extensions are the file extensions of written output.
var extensions = map[string]string{
	syntax.Markdown: ".md",
	syntax.XHTML:    ".html",
	syntax.XML:      ".xml",
	syntax.Plain:    ".txt",
}

func newRenderCmd(opts *options) *cobra.Command {
	var output, outdir string
	cmd := &cobra.Command{
		Use:   "render [file...]",
		Short: "Convert documents",
		Long: `Convert documents from the input syntax to the output syntax. Reads stdin if
no file is given. Several files are converted concurrently into an output directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(inputName(args))
			if err != nil {
				return err
			}
			logger := opts.logger(cmd)
			e, err := engine.New(cfg)
			if err != nil {
				return err
			}
			if len(args) > 1 || outdir != "" {
				if outdir == "" {
					return fmt.Errorf("converting %d files needs an output directory (--outdir)", len(args))
				}
				return renderBatch(e, cfg, logger, args, outdir)
			}
			in, name, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()
			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			logger.Debug("converting", "input", name, "from", cfg.Input, "to", cfg.Output)
			res, err := e.Convert(w, in, "", "")
			if err != nil {
				return err
			}
			logProblems(logger, name, res)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&outdir, "outdir", "d", "", "output directory for converting several files")
	return cmd
}

func renderBatch(e *engine.Engine, cfg *config.Config, logger *log.Logger, files []string, outdir string) error {
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return err
	}
	jobs := make([]engine.Job, 0, len(files))
	opened := make([]*os.File, 0, len(files))
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		opened = append(opened, f)
		from := syntax.Normalize(filepath.Ext(name))
		if from == filepath.Ext(name) {
			from = cfg.Input
		}
		jobs = append(jobs, engine.Job{Name: name, Input: f, From: from})
	}
	targets := outputNames(files, extensions[cfg.Output])
	failed := 0
	for i, r := range e.ConvertAll(jobs) {
		if r.Err != nil {
			logger.Error("conversion failed", "input", r.Name, "error", r.Err)
			failed++
			continue
		}
		target := filepath.Join(outdir, targets[i])
		if err := os.WriteFile(target, r.Output, 0o644); err != nil {
			return err
		}
		logger.Info("converted", "input", r.Name, "output", target)
		logProblems(logger, r.Name, r.Result)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", failed, len(files))
	}
	return nil
}

// outputNames derives output file names from input paths. Inputs sharing a
// base name get a numeric suffix, so "a/x.md" and "b/x.md" become "x.html"
// and "x-2.html".
func outputNames(files []string, ext string) []string {
	names := make([]string, len(files))
	taken := make(map[string]bool, len(files))
	for i, f := range files {
		base := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
		name := base + ext
		for n := 2; taken[name]; n++ {
			name = fmt.Sprintf("%s-%d%s", base, n, ext)
		}
		taken[name] = true
		names[i] = name
	}
	return names
}

func logProblems(logger *log.Logger, name string, res *engine.Result) {
	if res == nil {
		return
	}
	if report := res.LinkReport(); report != nil {
		for _, p := range report.Problems {
			logger.Warn("broken link", "input", name, "target", p.Ref.Reference, "problem", p.Message)
		}
	}
}
