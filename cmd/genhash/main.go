// cmd/genhash/main.go: print the stored hash for a password, for manual user inserts.
// Usage: go run ./cmd/genhash <password>
package main

import (
	"fmt"
	"os"

	"fuelpos/internal/service"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: genhash <password>")
		os.Exit(2)
	}
	h, err := service.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(h)
}
