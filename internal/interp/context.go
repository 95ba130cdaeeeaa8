package interp

// Context is threaded through every evaluation, carrying the fields
// SPEC_FULL §4.4/§6 names: a print sink, the current lexical environment,
// the frame new top-level definitions land in, the open-module list for
// unqualified fallback lookup, and the two callbacks (SetModule, ReadFile)
// that let INTERACTIVE primitives ask the host to do something without the
// core ever touching a terminal or a filesystem itself.
type Context struct {
	Print func(string)

	Env    *Environment
	DefEnv *Environment

	// Modules is the ordered list of currently-open module names searched,
	// in order, when an unqualified symbol misses the lexical chain.
	Modules []string

	SetModule func(name string)
	ReadFile  func(path string) error
}

// OpenModule returns the Module value that name resolves to in ctxt.Env, or
// false if name is unbound there or is bound to something other than a
// module. ctxt.Modules is not consulted.
func (ctxt *Context) OpenModule(name string) (*Module, bool) {
	b, ok := ctxt.Env.Find(name)
	if !ok || b.Value.Kind != KindModule {
		return nil, false
	}
	return b.Value.Mod, true
}
