package app

func drain(ch chan int) {
loop:
	for {
		select {
		case <-ch:
		default:
			break loop
		}
	}
}
