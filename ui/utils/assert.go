package utils

// Assert panics when condition is false. It guards internal invariants
// only; protocol input is validated with errors instead.
func Assert(condition bool, message ...string) {
	if !condition {
		if len(message) == 1 {
			panic(message[0])
		}
		panic("failed assertion")
	}
}
