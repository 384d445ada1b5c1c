/*
Package linkcheck checks the links of a document.

Anchor links must point to a block carrying an "id" parameter or to an
ID block. URLs must be absolute and syntactically valid. Checking does not
touch the network.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package linkcheck

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/npillmayer/blockdom/block"
	"github.com/npillmayer/blockdom/transform"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'blockdom.transform'.
func tracer() tracing.Trace {
	return tracing.Select("blockdom.transform")
}

// ErrBrokenLinks is returned in strict mode if a document has broken links.
var ErrBrokenLinks = errors.New("broken links")

// ReportKey is the key of the report in the transformation context.
const ReportKey = "linkcheck.report"

// Problem describes a broken link.
type Problem struct {
	Link    *block.Node
	Ref     block.ResourceRef
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Ref, p.Message)
}

// Report is the result of checking a document.
type Report struct {
	Checked  int          // number of links and images checked
	Anchors  int          // number of anchor links resolved
	Problems []Problem
}

// OK is true if no problems have been found.
func (r *Report) OK() bool {
	return len(r.Problems) == 0
}

// Checker is the link checking transformation.
type Checker struct {
	Strict  bool     // fail the transformation if links are broken
	Schemes []string // accepted URL schemes, http/https/ftp if empty
}

// New creates a non-strict link checker.
func New() *Checker {
	return &Checker{}
}

// Name is part of interface transform.Transformation.
func (c *Checker) Name() string { return "linkcheck" }

// Priority is part of interface transform.Transformation. Links are checked
// after macros, which may create link targets.
func (c *Checker) Priority() int { return 800 }

// Transform is part of interface transform.Transformation. It stores its
// report in the context under ReportKey.
func (c *Checker) Transform(ctx *transform.Context, root *block.Node) error {
	report := c.Check(root)
	ctx.Set(ReportKey, report)
	if c.Strict && !report.OK() {
		return fmt.Errorf("%w: %d of %d", ErrBrokenLinks, len(report.Problems), report.Checked)
	}
	return nil
}

// Check checks all links and images of a tree.
func (c *Checker) Check(root *block.Node) *Report {
	report := &Report{}
	refs := block.Or(block.MatchKind(block.LinkKind), block.MatchKind(block.ImageKind))
	for _, link := range root.FindAll(block.DescendantOrSelf, refs) {
		if link.Ref == nil {
			report.Problems = append(report.Problems, Problem{Link: link, Message: "missing target"})
			continue
		}
		report.Checked++
		var msg string
		switch link.Ref.Type {
		case block.AnchorRef:
			if resolve(root, link.Ref.Reference) == nil {
				msg = "anchor not found"
			} else {
				report.Anchors++
			}
		case block.URLRef:
			msg = c.checkURL(link.Ref.Reference)
		case block.MailtoRef:
			if at := strings.Index(link.Ref.Reference, "@"); at <= 0 || at == len(link.Ref.Reference)-1 {
				msg = "invalid mail address"
			}
		default:
			if strings.TrimSpace(link.Ref.Reference) == "" {
				msg = "empty reference"
			}
		}
		if msg != "" {
			tracer().Infof("link check: %s %s", link.Ref, msg)
			report.Problems = append(report.Problems, Problem{Link: link, Ref: *link.Ref, Message: msg})
		}
	}
	return report
}

// resolve finds the target of an anchor.
func resolve(root *block.Node, anchor string) *block.Node {
	target := block.Extract(func(n *block.Node) (*block.Node, bool) {
		if n.Kind == block.IDKind && n.Text == anchor {
			return n, true
		}
		if id, ok := n.LookupParam("id"); ok && id == anchor {
			return n, true
		}
		return nil, false
	})
	root.FindFirst(block.DescendantOrSelf, target)
	n, _ := target.Value()
	return n
}

func (c *Checker) checkURL(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return "malformed URL"
	}
	schemes := c.Schemes
	if len(schemes) == 0 {
		schemes = []string{"http", "https", "ftp"}
	}
	accepted := false
	for _, s := range schemes {
		if strings.EqualFold(u.Scheme, s) {
			accepted = true
		}
	}
	if !accepted {
		return fmt.Sprintf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "missing host"
	}
	return ""
}
