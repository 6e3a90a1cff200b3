package treebuilder

import (
	"strings"

	"github.com/crestfall/htmlcore/dom"
)

// quirkyPublicIDPrefixes are the public-identifier prefixes that force
// quirks mode regardless of system identifier, §13.2.5.4.1 step 3.
var quirkyPublicIDPrefixes = []string{
	"-//w3o//dtd w3 html strict 3.0//en//",
	"-/w3d/dtd html 4.0 transitional/en",
	"html",
	"-//advasoft ltd//dtd html 3.0 aswedit + extensions//",
	"-//as//dtd html 3.0 aswedit + extensions//",
	"-//ietf//dtd html 2.0 level 1//",
	"-//ietf//dtd html 2.0 level 2//",
	"-//ietf//dtd html 2.0 strict level 1//",
	"-//ietf//dtd html 2.0 strict level 2//",
	"-//ietf//dtd html 2.0 strict//",
	"-//ietf//dtd html 2.0//",
	"-//ietf//dtd html 2.1e//",
	"-//ietf//dtd html 3.0//",
	"-//ietf//dtd html 3.2 final//",
	"-//ietf//dtd html 3.2//",
	"-//ietf//dtd html 3//",
	"-//ietf//dtd html level 0//",
	"-//ietf//dtd html level 1//",
	"-//ietf//dtd html level 2//",
	"-//ietf//dtd html level 3//",
	"-//ietf//dtd html strict level 0//",
	"-//ietf//dtd html strict level 1//",
	"-//ietf//dtd html strict level 2//",
	"-//ietf//dtd html strict level 3//",
	"-//ietf//dtd html strict//",
	"-//ietf//dtd html//",
	"-//metrius//dtd metrius presentational//",
	"-//microsoft//dtd internet explorer 2.0 html strict//",
	"-//microsoft//dtd internet explorer 2.0 html//",
	"-//microsoft//dtd internet explorer 2.0 tables//",
	"-//microsoft//dtd internet explorer 3.0 html strict//",
	"-//microsoft//dtd internet explorer 3.0 html//",
	"-//microsoft//dtd internet explorer 3.0 tables//",
	"-//netscape comm. corp.//dtd html//",
	"-//netscape comm. corp.//dtd strict html//",
	"-//o'reilly and associates//dtd html 2.0//",
	"-//o'reilly and associates//dtd html extended 1.0//",
	"-//o'reilly and associates//dtd html extended relaxed 1.0//",
	"-//sq//dtd html 2.0 hotmetal + extensions//",
	"-//softquad software//dtd hotmetal pro 6.0::19990601::extensions to html 4.0//",
	"-//softquad//dtd hotmetal pro 4.0::19971010::extensions to html 4.0//",
	"-//spyglass//dtd html 2.0 extended//",
	"-//sun microsystems corp.//dtd hotjava html//",
	"-//sun microsystems corp.//dtd hotjava strict html//",
	"-//w3c//dtd html 3 1995-03-24//",
	"-//w3c//dtd html 3.2 draft//",
	"-//w3c//dtd html 3.2 final//",
	"-//w3c//dtd html 3.2//",
	"-//w3c//dtd html 3.2s draft//",
	"-//w3c//dtd html 4.0 frameset//",
	"-//w3c//dtd html 4.0 transitional//",
	"-//w3c//dtd html experimental 19960712//",
	"-//w3c//dtd html experimental 970421//",
	"-//w3c//dtd w3 html//",
	"-//w3o//dtd w3 html 3.0//",
	"-//webtechs//dtd mozilla html 2.0//",
	"-//webtechs//dtd mozilla html//",
}

var quirkyFramesetPublicIDPrefixes = []string{
	"-//w3c//dtd html 4.01 frameset//",
	"-//w3c//dtd html 4.01 transitional//",
}

const quirkyFramesetSystemID = "http://www.ibm.com/data/dtd/v11/ibmxhtml1-transitional.dtd"

func hasPrefixFold(s string, prefixes []string) bool {
	s = strings.ToLower(s)
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// deriveQuirksMode implements the DOCTYPE token handling rules of
// §13.2.5.4.1 "The 'initial' insertion mode": forceQuirks, name other
// than "html", or a quirky/limited-quirky public or system identifier
// all push the document out of no-quirks mode.
func deriveQuirksMode(name, publicID, systemID string, hasPublic, hasSystem, forceQuirks bool) dom.QuirksMode {
	if forceQuirks || name != "html" {
		return dom.Quirks
	}
	if hasPublic && hasPrefixFold(publicID, quirkyPublicIDPrefixes) {
		return dom.Quirks
	}
	if hasPublic && strings.EqualFold(publicID, "-//w3o//dtd w3 html strict 3.0//en//") {
		return dom.Quirks
	}
	if hasSystem && strings.EqualFold(systemID, "http://www.ibm.com/data/dtd/v11/ibmxhtml1-transitional.dtd") {
		return dom.Quirks
	}
	if !hasSystem && hasPublic && hasPrefixFold(publicID, []string{
		"-//w3c//dtd html 4.01 frameset//",
		"-//w3c//dtd html 4.01 transitional//",
	}) {
		return dom.Quirks
	}
	if hasPublic && (strings.EqualFold(publicID, "-//w3c//dtd xhtml 1.0 frameset//") ||
		strings.EqualFold(publicID, "-//w3c//dtd xhtml 1.0 transitional//")) {
		return dom.LimitedQuirks
	}
	if hasPublic && hasPrefixFold(publicID, quirkyFramesetPublicIDPrefixes) && hasSystem {
		return dom.LimitedQuirks
	}
	return dom.NoQuirks
}
