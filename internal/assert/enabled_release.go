//go:build release

package assert

// Enabled reports whether failed checks panic.
const Enabled = false
