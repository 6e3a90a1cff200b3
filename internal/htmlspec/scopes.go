package htmlspec

// The scope stopper sets below bound "has an element in the specific
// scope" per §13.2.4.2 of the WHATWG algorithm. Each maps a (namespace,
// local name) pair — expressed as IntegrationPoint for reuse — to true
// when that element stops the scope walk.

func scopeSet(pairs ...IntegrationPoint) map[IntegrationPoint]bool {
	m := make(map[IntegrationPoint]bool, len(pairs))
	for _, p := range pairs {
		m[p] = true
	}
	return m
}

// DefaultScope is the base stopper set for "has an element in scope".
// ListItemScope and ButtonScope extend it with their own extra stoppers;
// the table, table-section, row and select sets are separate.
var DefaultScope = scopeSet(
	IntegrationPoint{NSHTML, "applet"},
	IntegrationPoint{NSHTML, "caption"},
	IntegrationPoint{NSHTML, "html"},
	IntegrationPoint{NSHTML, "table"},
	IntegrationPoint{NSHTML, "td"},
	IntegrationPoint{NSHTML, "th"},
	IntegrationPoint{NSHTML, "marquee"},
	IntegrationPoint{NSHTML, "object"},
	IntegrationPoint{NSHTML, "template"},
	IntegrationPoint{NSMathML, "mi"},
	IntegrationPoint{NSMathML, "mo"},
	IntegrationPoint{NSMathML, "mn"},
	IntegrationPoint{NSMathML, "ms"},
	IntegrationPoint{NSMathML, "mtext"},
	IntegrationPoint{NSMathML, "annotation-xml"},
	IntegrationPoint{NSSVG, "foreignObject"},
	IntegrationPoint{NSSVG, "desc"},
	IntegrationPoint{NSSVG, "title"},
)

// ListItemScope extends DefaultScope for "has an element in list item
// scope" (used by the `<li>` start-tag algorithm).
var ListItemScope = union(DefaultScope, scopeSet(
	IntegrationPoint{NSHTML, "ol"},
	IntegrationPoint{NSHTML, "ul"},
))

// ButtonScope extends DefaultScope for "has an element in button scope"
// (used by the `<p>`-implying rules and the `<button>` start-tag algorithm).
var ButtonScope = union(DefaultScope, scopeSet(
	IntegrationPoint{NSHTML, "button"},
))

// TableScope is the narrow stopper set used by "has an element in table
// scope" (table/tbody/tfoot/thead-adjacent handling).
var TableScope = scopeSet(
	IntegrationPoint{NSHTML, "html"},
	IntegrationPoint{NSHTML, "table"},
	IntegrationPoint{NSHTML, "template"},
)

// TableBodyScope stops at the table-section boundary.
var TableBodyScope = scopeSet(
	IntegrationPoint{NSHTML, "html"},
	IntegrationPoint{NSHTML, "tbody"},
	IntegrationPoint{NSHTML, "tfoot"},
	IntegrationPoint{NSHTML, "thead"},
	IntegrationPoint{NSHTML, "template"},
)

// TableRowScope stops at the table-row boundary.
var TableRowScope = scopeSet(
	IntegrationPoint{NSHTML, "html"},
	IntegrationPoint{NSHTML, "tr"},
	IntegrationPoint{NSHTML, "template"},
)

// SelectScope is the inverse-sense stopper set for "has an element in
// select scope": every element EXCEPT optgroup/option stops the walk.
var SelectScope = scopeSet(
	IntegrationPoint{NSHTML, "optgroup"},
	IntegrationPoint{NSHTML, "option"},
)

func union(sets ...map[IntegrationPoint]bool) map[IntegrationPoint]bool {
	out := make(map[IntegrationPoint]bool)
	for _, s := range sets {
		for k, v := range s {
			out[k] = v
		}
	}
	return out
}
