package treebuilder

// InsertionMode names one of the tree constructor's 23 processing
// contexts, §13.2.4.1.
type InsertionMode int

const (
	Initial InsertionMode = iota
	BeforeHTML
	BeforeHead
	InHead
	InHeadNoscript
	AfterHead
	InBody
	Text
	InTable
	InTableText
	InCaption
	InColumnGroup
	InTableBody
	InRow
	InCell
	InSelect
	InSelectInTable
	InTemplate
	AfterBody
	InFrameset
	AfterFrameset
	AfterAfterBody
	AfterAfterFrameset
)

var modeNames = [...]string{
	"Initial", "BeforeHTML", "BeforeHead", "InHead", "InHeadNoscript",
	"AfterHead", "InBody", "Text", "InTable", "InTableText", "InCaption",
	"InColumnGroup", "InTableBody", "InRow", "InCell", "InSelect",
	"InSelectInTable", "InTemplate", "AfterBody", "InFrameset",
	"AfterFrameset", "AfterAfterBody", "AfterAfterFrameset",
}

func (m InsertionMode) String() string {
	if int(m) >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "Unknown"
}
