package app

func handle() {
trace:
	"starting"
}
