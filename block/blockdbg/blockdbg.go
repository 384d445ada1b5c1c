/*
Package blockdbg implements helpers to debug a block tree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>


*/
package blockdbg

import (
	"fmt"
	"html"
	"io"
	"strings"
	"text/template"

	"github.com/npillmayer/blockdom/block"
	tp "github.com/xlab/treeprint"
)

// Dump returns an indented text picture of the tree under root, one line
// per block.
func Dump(root *block.Node) string {
	if root == nil {
		return ""
	}
	p := tp.New()
	dump(p, root)
	return p.String()
}

func dump(p tp.Tree, n *block.Node) {
	if n.ChildCount() == 0 {
		p.AddNode(label(n))
		return
	}
	branch := p.AddBranch(label(n))
	for _, ch := range n.Children() {
		dump(branch, ch)
	}
}

func label(n *block.Node) string {
	var b strings.Builder
	b.WriteString(n.Kind.String())
	switch n.Kind {
	case block.WordKind, block.SpecialSymbolKind:
		fmt.Fprintf(&b, " %q", n.Text)
	case block.VerbatimKind, block.RawKind:
		fmt.Fprintf(&b, " %q", abbrev(n.Text, 20))
	case block.HeaderKind:
		fmt.Fprintf(&b, " level=%d", n.Level)
	case block.FormatKind:
		fmt.Fprintf(&b, " %s", n.Format)
	case block.LinkKind, block.ImageKind:
		if n.Ref != nil {
			fmt.Fprintf(&b, " %s", n.Ref)
		}
	case block.MacroKind, block.MacroMarkerKind:
		fmt.Fprintf(&b, " id=%s", n.MacroID)
	}
	for _, k := range n.ParamNames() {
		fmt.Fprintf(&b, " %s=%q", k, n.Param(k))
	}
	return b.String()
}

// abbrev shortens s to at most l runes.
func abbrev(s string, l int) string {
	r := []rune(s)
	if len(r) > l {
		return string(r[:l]) + "..."
	}
	return s
}

// --- GraphViz ----------------------------------------------------------------

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname  string
	NodeTmpl  *template.Template
	EdgeTmpl  *template.Template
	ParamTmpl *template.Template
}

// ToGraphViz outputs a diagram for a block tree. The diagram is in
// GraphViz (DOT) format. Blocks carrying parameters get an attached
// table listing them.
func ToGraphViz(root *block.Node, w io.Writer) error {
	tmpl, err := template.New("blocks").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("blocknode").Funcs(
		template.FuncMap{
			"shortstring": shortText,
			"label":       label,
		}).Parse(blockNodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("blockedge").Parse(blockEdgeTmpl))
	gparams.ParamTmpl = template.Must(template.New("params").Funcs(
		template.FuncMap{"esc": html.EscapeString}).Parse(paramsTmpl))
	if err = tmpl.Execute(w, gparams); err != nil {
		return err
	}
	dict := make(map[*block.Node]string, 256)
	if root != nil {
		if err = nodes(root, w, dict, &gparams); err != nil {
			return err
		}
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

type node struct {
	N      *block.Node
	Name   string
	IsText bool
}

type edge struct {
	N1, N2 node
}

type params struct {
	Name   string
	Params []param
}

type param struct {
	Key, Value string
}

func nodes(n *block.Node, w io.Writer, dict map[*block.Node]string, gparams *graphParamsType) error {
	if err := blockNode(n, w, dict, gparams); err != nil {
		return err
	}
	for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
		if err := nodes(ch, w, dict, gparams); err != nil {
			return err
		}
		e := edge{node{N: n, Name: dict[n]}, node{N: ch, Name: dict[ch]}}
		if err := gparams.EdgeTmpl.Execute(w, e); err != nil {
			return err
		}
	}
	return nil
}

func blockNode(n *block.Node, w io.Writer, dict map[*block.Node]string, gparams *graphParamsType) error {
	name := dict[n]
	if name == "" {
		name = fmt.Sprintf("node%05d", len(dict)+1)
		dict[n] = name
	}
	isText := n.Kind == block.WordKind || n.Kind == block.SpecialSymbolKind ||
		n.Kind == block.VerbatimKind || n.Kind == block.RawKind
	if err := gparams.NodeTmpl.Execute(w, &node{n, name, isText}); err != nil {
		return err
	}
	names := n.ParamNames()
	if len(names) == 0 {
		return nil
	}
	ps := params{Name: name}
	for _, k := range names {
		ps.Params = append(ps.Params, param{k, n.Param(k)})
	}
	return gparams.ParamTmpl.Execute(w, ps)
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\\n`, "\t", `\\t`, " ", "␣")

// shortText is a DOT string literal showing the (abbreviated) text of n in quotes.
func shortText(n *block.Node) string {
	return `"\"` + dotEscaper.Replace(abbrev(n.Text, 10)) + `\""`
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const blockNodeTmpl = `{{ if .IsText }}
{{ .Name }}	[ label={{ shortstring .N }} shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
{{ else }}
{{ .Name }}	[ label={{ printf "%q" (label .N) }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
{{ end }}
`

const blockEdgeTmpl = `{{ .N1.Name }} -> {{ .N2.Name }} [weight=1] ;
`

const paramsTmpl = `{{ .Name }}_params [ style="filled" penwidth=1 fillcolor="ivory3" shape="Mrecord" fontsize=12
    label=<<table border="0" cellborder="0" cellpadding="2" cellspacing="0" bgcolor="ivory3">
      {{ range .Params }}
      <tr><td align="right">{{ esc .Key }}:</td><td>{{ esc .Value }}</td></tr>
      {{ end }}
    </table>> ] ;
{{ .Name }} -> {{ .Name }}_params [dir=none weight=1 style="dashed"] ;
`
