package builtins

// NewCoreRegistry builds a Registry with every SPEC_FULL §4.7 primitive
// plus the §4.7.1 interactive primitives, the latter tagged
// CategoryInteractive so pkg/ragnarok can split them into the INTERACTIVE
// module while everything else becomes CORE.
func NewCoreRegistry() *Registry {
	r := NewRegistry()
	installPredicates(r)
	installArithmetic(r)
	installBoolean(r)
	installStrings(r)
	installLists(r)
	installHigherOrder(r)
	installEquality(r)
	installReferences(r)
	installDict(r)
	installIO(r)
	installInteractive(r)
	return r
}
