package block

import "strings"

// Kind is the discriminating tag of a block. Kinds form a small, closed
// hierarchy: every kind except BlockKind has exactly one super-kind.
// Abstract kinds (BlockKind, ListKind) are never assigned to a node but may be
// used for matching.
type Kind uint8

// Block kinds.
const (
	BlockKind Kind = iota // abstract top of the kind hierarchy
	DocumentKind
	GroupKind
	SectionKind
	ParagraphKind
	HeaderKind
	WordKind
	SpaceKind
	SpecialSymbolKind
	NewLineKind
	EmptyLinesKind
	FormatKind
	LinkKind
	ImageKind
	IDKind
	ListKind // abstract
	BulletedListKind
	NumberedListKind
	ListItemKind
	DefinitionListKind
	DefinitionTermKind
	DefinitionDescriptionKind
	QuotationKind
	QuotationLineKind
	TableKind
	TableRowKind
	TableCellKind
	TableHeadCellKind
	HorizontalLineKind
	VerbatimKind
	RawKind
	MacroKind
	MacroMarkerKind
	kindCount
)

var kinds = [kindCount]struct {
	name  string
	super Kind
}{
	BlockKind:                 {"block", BlockKind},
	DocumentKind:              {"document", BlockKind},
	GroupKind:                 {"group", BlockKind},
	SectionKind:               {"section", BlockKind},
	ParagraphKind:             {"paragraph", BlockKind},
	HeaderKind:                {"header", BlockKind},
	WordKind:                  {"word", BlockKind},
	SpaceKind:                 {"space", BlockKind},
	SpecialSymbolKind:         {"specialsymbol", BlockKind},
	NewLineKind:               {"newline", BlockKind},
	EmptyLinesKind:            {"emptylines", BlockKind},
	FormatKind:                {"format", BlockKind},
	LinkKind:                  {"link", BlockKind},
	ImageKind:                 {"image", BlockKind},
	IDKind:                    {"id", BlockKind},
	ListKind:                  {"list", BlockKind},
	BulletedListKind:          {"bulletedlist", ListKind},
	NumberedListKind:          {"numberedlist", ListKind},
	ListItemKind:              {"listitem", BlockKind},
	DefinitionListKind:        {"definitionlist", BlockKind},
	DefinitionTermKind:        {"definitionterm", BlockKind},
	DefinitionDescriptionKind: {"definitiondescription", BlockKind},
	QuotationKind:             {"quotation", BlockKind},
	QuotationLineKind:         {"quotationline", BlockKind},
	TableKind:                 {"table", BlockKind},
	TableRowKind:              {"tablerow", BlockKind},
	TableCellKind:             {"tablecell", BlockKind},
	TableHeadCellKind:         {"tableheadcell", TableCellKind},
	HorizontalLineKind:        {"horizontalline", BlockKind},
	VerbatimKind:              {"verbatim", BlockKind},
	RawKind:                   {"raw", BlockKind},
	MacroKind:                 {"macro", BlockKind},
	MacroMarkerKind:           {"macromarker", BlockKind},
}

func (k Kind) String() string {
	if k >= kindCount {
		return "unknown"
	}
	return kinds[k].name
}

// Super returns the super-kind of k. The super-kind of BlockKind is BlockKind.
func (k Kind) Super() Kind {
	if k >= kindCount {
		return BlockKind
	}
	return kinds[k].super
}

// Is returns true if k equals other or if other is one of k's super-kinds.
func (k Kind) Is(other Kind) bool {
	for {
		if k == other {
			return true
		}
		if k == BlockKind || k >= kindCount {
			return false
		}
		k = kinds[k].super
	}
}

// KindByName returns the kind with a given name (see Kind.String).
func KindByName(name string) (Kind, bool) {
	for k := BlockKind; k < kindCount; k++ {
		if kinds[k].name == name {
			return k, true
		}
	}
	return BlockKind, false
}

// Format is the kind of text formatting a FormatKind block applies to its
// children.
type Format uint8

// Text formats.
const (
	NoFormat Format = iota
	Bold
	Italic
	Underline
	Strikethrough
	Monospace
	Superscript
	Subscript
)

var formatNames = [...]string{"none", "bold", "italic", "underline", "strikethrough",
	"monospace", "superscript", "subscript"}

func (f Format) String() string {
	if int(f) >= len(formatNames) {
		return "none"
	}
	return formatNames[f]
}

// FormatByName is the inverse of Format.String.
func FormatByName(name string) Format {
	for i, n := range formatNames {
		if n == name {
			return Format(i)
		}
	}
	return NoFormat
}

// RefType classifies the resource a link or an image points to.
type RefType uint8

// Resource reference types.
const (
	URLRef RefType = iota
	DocRef
	MailtoRef
	AnchorRef
	PathRef
)

var refTypeNames = [...]string{"url", "doc", "mailto", "anchor", "path"}

func (t RefType) String() string {
	if int(t) >= len(refTypeNames) {
		return "url"
	}
	return refTypeNames[t]
}

// RefTypeByName is the inverse of RefType.String.
func RefTypeByName(name string) RefType {
	for i, n := range refTypeNames {
		if n == name {
			return RefType(i)
		}
	}
	return URLRef
}

// ResourceRef is the target of a link or an image.
type ResourceRef struct {
	Type      RefType
	Reference string
}

func (r ResourceRef) String() string {
	return r.Type.String() + ":" + r.Reference
}

// ParseResourceRef classifies a link or image target as found in markup:
// "#x" is an anchor, "mailto:x" a mail address, anything with a scheme
// separator an URL and everything else a path.
func ParseResourceRef(dest string) ResourceRef {
	switch {
	case strings.HasPrefix(dest, "#"):
		return ResourceRef{Type: AnchorRef, Reference: dest[1:]}
	case strings.HasPrefix(dest, "mailto:"):
		return ResourceRef{Type: MailtoRef, Reference: dest[len("mailto:"):]}
	case strings.Contains(dest, "://"):
		return ResourceRef{Type: URLRef, Reference: dest}
	}
	return ResourceRef{Type: PathRef, Reference: dest}
}
