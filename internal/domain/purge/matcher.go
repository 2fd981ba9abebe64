package purge

import "vuexpurge.dev/pkg/vuexpurge/internal/syntax"

// TargetProperty is the property whose object value is searched for mapped
// spreads.
const TargetProperty = "methods"

// IsTargetProperty reports whether n is a `methods: ...` property assignment
// with a plain identifier key. Shorthand, computed and string keys do not
// qualify.
func IsTargetProperty(n *syntax.Node) bool {
	if n == nil || n.Kind != syntax.KindPair {
		return false
	}

	key := n.ChildByField("key")
	if key == nil || key.Kind != syntax.KindPropertyIdentifier {
		return false
	}

	return key.Text == TargetProperty
}

// IsMappedSpread reports whether elem is `...helper(...)` for the given
// monitored helper name.
func IsMappedSpread(elem *syntax.Node, helper string) bool {
	return mappedCall(elem, helper) != nil
}

// mappedCall returns the helper call of a mapped spread, or nil.
func mappedCall(elem *syntax.Node, helper string) *syntax.Node {
	if elem == nil || elem.Kind != syntax.KindSpreadElement {
		return nil
	}

	named := elem.NamedChildren()
	if len(named) != 1 {
		return nil
	}

	call := named[0]
	if call.Kind != syntax.KindCallExpression {
		return nil
	}

	callee := call.ChildByField("function")
	if callee == nil || callee.Kind != syntax.KindIdentifier {
		return nil
	}

	if callee.Text != helper {
		return nil
	}

	if call.ChildByField("arguments") == nil {
		return nil
	}

	return call
}
