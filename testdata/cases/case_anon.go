package app

func spawn() func() {
	return func() {
	trace:
		"tick"
	}
}
