package markdown

// Reserved rules. They hold their slots in the chain so plugins can replace
// them with At, and so Before/After anchors resolve.

func ruleReference(_ *StateBlock, _, _ int, _ bool) bool { return false }

func ruleTable(_ *StateBlock, _, _ int, _ bool) bool { return false }

func ruleHTMLBlock(_ *StateBlock, _, _ int, _ bool) bool { return false }
