package ir

// Mangle applies B's symbol-mangling convention (spec.md §4.4): every
// B-visible global is emitted under the "b." prefix, which is not a valid C
// identifier fragment and so can never collide with the runtime library's
// C-visible names.
func Mangle(name string) string {
	return "b." + name
}
