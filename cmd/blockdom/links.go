package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/npillmayer/blockdom/block"
	"github.com/npillmayer/blockdom/engine"
	"github.com/npillmayer/blockdom/transform/linkcheck"
	"github.com/spf13/cobra"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	problemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

func newLinksCmd(opts *options) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "links [file]",
		Short: "Check the links of a document",
		Long:  `Check anchors, URLs and mail addresses of a document, after macros have been executed.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(inputName(args))
			if err != nil {
				return err
			}
			cfg.LinkCheck.Strict = false
			if !cfg.Enabled("linkcheck") {
				cfg.Transformations = append(cfg.Transformations, "linkcheck")
			}
			e, err := engine.New(cfg)
			if err != nil {
				return err
			}
			in, name, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()
			root, err := e.Parse(in, "")
			if err != nil {
				return err
			}
			ctx, err := e.Transform(root, "", "")
			if err != nil {
				return err
			}
			report, _ := ctx.Value(linkcheck.ReportKey).(*linkcheck.Report)
			if report == nil {
				return fmt.Errorf("no link report")
			}
			if name == "" {
				name = "stdin"
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatReport(name, report))
			if strict && !report.OK() {
				return fmt.Errorf("%w: %d", linkcheck.ErrBrokenLinks, len(report.Problems))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error if links are broken")
	return cmd
}

// formatReport renders a link check report for the terminal.
func formatReport(name string, report *linkcheck.Report) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Links of "+name) + "\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d checked, %d anchors resolved", report.Checked, report.Anchors)))
	if report.OK() {
		b.WriteString("\n" + okStyle.Render("✓ no problems"))
		return boxStyle.Render(b.String())
	}
	for _, p := range report.Problems {
		text := ""
		if p.Link != nil {
			text = strings.TrimSpace(block.TextOf(p.Link))
		}
		line := problemStyle.Render("✗ "+p.Ref.String()) + " " + p.Message
		if text != "" {
			line += dimStyle.Render(fmt.Sprintf(" (%q)", text))
		}
		b.WriteString("\n" + line)
	}
	return boxStyle.Render(b.String())
}
