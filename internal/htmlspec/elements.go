package htmlspec

// Namespace URIs recognized during tree construction.
const (
	NSHTML   = "http://www.w3.org/1999/xhtml"
	NSSVG    = "http://www.w3.org/2000/svg"
	NSMathML = "http://www.w3.org/1998/Math/MathML"
	NSXLink  = "http://www.w3.org/1999/xlink"
	NSXML    = "http://www.w3.org/XML/1998/namespace"
	NSXMLNS  = "http://www.w3.org/2000/xmlns/"
)

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// VoidElements have no end tag and no children; the tokenizer's start-tag
// self-closing flag is always acknowledged for them.
var VoidElements = set(
	"area", "base", "br", "col", "embed", "hr", "img", "input",
	"link", "meta", "param", "source", "track", "wbr",
)

// RawTextElements are the raw text elements. Their content is tokenized in
// the RAWTEXT state (style) or the script data state (script).
var RawTextElements = set("script", "style")

// EscapableRawTextElements switch the tokenizer into RCDATA on their start tag.
var EscapableRawTextElements = set("textarea", "title")

// SpecialElements bounds the adoption agency's furthest-block search
// (glossary: "Special tag").
var SpecialElements = set(
	"address", "applet", "area", "article", "aside", "base", "basefont",
	"bgsound", "blockquote", "body", "br", "button", "caption", "center",
	"col", "colgroup", "dd", "details", "dir", "div", "dl", "dt", "embed",
	"fieldset", "figcaption", "figure", "footer", "form", "frame",
	"frameset", "h1", "h2", "h3", "h4", "h5", "h6", "head", "header",
	"hgroup", "hr", "html", "iframe", "img", "input", "keygen", "li",
	"link", "listing", "main", "marquee", "menu", "meta", "nav", "noembed",
	"noframes", "noscript", "object", "ol", "p", "param", "plaintext",
	"pre", "script", "search", "section", "select", "source", "style",
	"summary", "table", "tbody", "td", "template", "textarea", "tfoot",
	"th", "thead", "title", "tr", "track", "ul", "wbr", "xmp",
)

// FormattingElements participate in the active-formatting-elements list
// and the adoption agency algorithm.
var FormattingElements = set(
	"a", "b", "big", "code", "em", "font", "i", "nobr", "s", "small",
	"strike", "strong", "tt", "u",
)

// ImpliedEndTagElements may be popped implicitly by "generate implied end
// tags" when they are not the element named as the exception.
var ImpliedEndTagElements = set(
	"dd", "dt", "li", "optgroup", "option", "p", "rb", "rp", "rt", "rtc",
)

// ThoroughImpliedEndTagElements extends ImpliedEndTagElements with the
// table-section/table-row/table-cell/column-group family, used by the
// "generate all implied end tags thoroughly" step.
var ThoroughImpliedEndTagElements = set(
	"caption", "colgroup", "dd", "dt", "li", "optgroup", "option", "p",
	"rb", "rp", "rt", "rtc", "tbody", "td", "tfoot", "th", "thead", "tr",
)

// TableFosterTargets are the elements whose presence as "current node"
// triggers foster parenting of non-table-appropriate content.
var TableFosterTargets = set("table", "tbody", "tfoot", "thead", "tr")

// TableScopedChildren are allowed as direct children of a table without
// triggering foster parenting.
var TableScopedChildren = set(
	"caption", "colgroup", "tbody", "tfoot", "thead", "tr", "td", "th",
	"script", "template", "style",
)

// ForeignBreakoutElements are HTML elements that, when they appear as a
// start tag inside foreign content, cause the parser to pop back to the
// nearest HTML/integration-point context before inserting them.
var ForeignBreakoutElements = set(
	"b", "big", "blockquote", "body", "br", "center", "code", "dd", "div",
	"dl", "dt", "em", "embed", "h1", "h2", "h3", "h4", "h5", "h6", "head",
	"hr", "i", "img", "li", "listing", "menu", "meta", "nobr", "ol", "p",
	"pre", "ruby", "s", "small", "span", "strong", "strike", "sub", "sup",
	"table", "tt", "u", "ul", "var",
)

// SVGTagNameFixups maps a lowercased SVG tag name to its camelCased form;
// the tokenizer always lowercases tag names, so foreign-content element
// creation must restore SVG's camelCase spelling.
var SVGTagNameFixups = map[string]string{
	"altglyph": "altGlyph", "altglyphdef": "altGlyphDef", "altglyphitem": "altGlyphItem",
	"animatecolor": "animateColor", "animatemotion": "animateMotion", "animatetransform": "animateTransform",
	"clippath": "clipPath", "feblend": "feBlend", "fecolormatrix": "feColorMatrix",
	"fecomponenttransfer": "feComponentTransfer", "fecomposite": "feComposite",
	"feconvolvematrix": "feConvolveMatrix", "fediffuselighting": "feDiffuseLighting",
	"fedisplacementmap": "feDisplacementMap", "fedistantlight": "feDistantLight",
	"feflood": "feFlood", "fefunca": "feFuncA", "fefuncb": "feFuncB", "fefuncg": "feFuncG",
	"fefuncr": "feFuncR", "fegaussianblur": "feGaussianBlur", "feimage": "feImage",
	"femerge": "feMerge", "femergenode": "feMergeNode", "femorphology": "feMorphology",
	"feoffset": "feOffset", "fepointlight": "fePointLight", "fespecularlighting": "feSpecularLighting",
	"fespotlight": "feSpotLight", "fetile": "feTile", "feturbulence": "feTurbulence",
	"foreignobject": "foreignObject", "glyphref": "glyphRef", "lineargradient": "linearGradient",
	"radialgradient": "radialGradient", "textpath": "textPath",
}

// SVGAttrFixups maps a lowercased SVG attribute name to its camelCased form.
var SVGAttrFixups = map[string]string{
	"attributename": "attributeName", "attributetype": "attributeType",
	"basefrequency": "baseFrequency", "baseprofile": "baseProfile", "calcmode": "calcMode",
	"clippathunits": "clipPathUnits", "diffuseconstant": "diffuseConstant", "edgemode": "edgeMode",
	"filterunits": "filterUnits", "glyphref": "glyphRef", "gradienttransform": "gradientTransform",
	"gradientunits": "gradientUnits", "kernelmatrix": "kernelMatrix", "kernelunitlength": "kernelUnitLength",
	"keypoints": "keyPoints", "keysplines": "keySplines", "keytimes": "keyTimes",
	"lengthadjust": "lengthAdjust", "limitingconeangle": "limitingConeAngle",
	"markerheight": "markerHeight", "markerunits": "markerUnits", "markerwidth": "markerWidth",
	"maskcontentunits": "maskContentUnits", "maskunits": "maskUnits", "numoctaves": "numOctaves",
	"pathlength": "pathLength", "patterncontentunits": "patternContentUnits",
	"patterntransform": "patternTransform", "patternunits": "patternUnits",
	"pointsatx": "pointsAtX", "pointsaty": "pointsAtY", "pointsatz": "pointsAtZ",
	"preservealpha": "preserveAlpha", "preserveaspectratio": "preserveAspectRatio",
	"primitiveunits": "primitiveUnits", "refx": "refX", "refy": "refY",
	"repeatcount": "repeatCount", "repeatdur": "repeatDur", "requiredextensions": "requiredExtensions",
	"requiredfeatures": "requiredFeatures", "specularconstant": "specularConstant",
	"specularexponent": "specularExponent", "spreadmethod": "spreadMethod",
	"startoffset": "startOffset", "stddeviation": "stdDeviation", "stitchtiles": "stitchTiles",
	"surfacescale": "surfaceScale", "systemlanguage": "systemLanguage", "tablevalues": "tableValues",
	"targetx": "targetX", "targety": "targetY", "textlength": "textLength", "viewbox": "viewBox",
	"viewtarget": "viewTarget", "xchannelselector": "xChannelSelector", "ychannelselector": "yChannelSelector",
	"zoomandpan": "zoomAndPan",
}

// MathMLAttrFixups maps a lowercased MathML attribute name to its
// camelCased form (there is exactly one: definitionURL).
var MathMLAttrFixups = map[string]string{
	"definitionurl": "definitionURL",
}

// ForeignAttr describes how a foreign attribute name expands into a
// (prefix, local name, namespace) triple.
type ForeignAttr struct {
	Prefix    string
	LocalName string
	Namespace string
}

// ForeignAttrFixups adjusts xlink:/xml:/xmlns: attributes on foreign
// (SVG/MathML) elements to their namespaced form.
var ForeignAttrFixups = map[string]ForeignAttr{
	"xlink:actuate": {"xlink", "actuate", NSXLink},
	"xlink:arcrole": {"xlink", "arcrole", NSXLink},
	"xlink:href":    {"xlink", "href", NSXLink},
	"xlink:role":    {"xlink", "role", NSXLink},
	"xlink:show":    {"xlink", "show", NSXLink},
	"xlink:title":   {"xlink", "title", NSXLink},
	"xlink:type":    {"xlink", "type", NSXLink},
	"xml:lang":      {"xml", "lang", NSXML},
	"xml:space":     {"xml", "space", NSXML},
	"xmlns":         {"", "xmlns", NSXMLNS},
	"xmlns:xlink":   {"xmlns", "xlink", NSXMLNS},
}

// IntegrationPoint identifies an element by (namespace, local name).
type IntegrationPoint struct {
	Namespace string
	LocalName string
}

// HTMLIntegrationPoints are foreign elements that switch parsing back to
// HTML rules for their descendants.
var HTMLIntegrationPoints = map[IntegrationPoint]bool{
	{NSMathML, "annotation-xml"}: true,
	{NSSVG, "foreignObject"}:     true,
	{NSSVG, "desc"}:              true,
	{NSSVG, "title"}:             true,
}

// MathMLTextIntegrationPoints are MathML elements that accept HTML text
// content directly.
var MathMLTextIntegrationPoints = map[IntegrationPoint]bool{
	{NSMathML, "mi"}: true, {NSMathML, "mo"}: true, {NSMathML, "mn"}: true,
	{NSMathML, "ms"}: true, {NSMathML, "mtext"}: true,
}
