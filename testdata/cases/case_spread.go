package app

import "fmt"

func report(n int) {
trace:
	println("count", n)
	fmt.Println(n)
}
