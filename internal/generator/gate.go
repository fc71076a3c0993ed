package generator

// ShouldInstrument decides, once per function at rewrite time, whether
// instrumentation is emitted at all. Without force, release builds get the
// original body back untouched: no logging or timing calls exist in the
// output, rather than being disabled behind a runtime check.
func ShouldInstrument(force, release bool) bool {
	return force || !release
}
