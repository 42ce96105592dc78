package main

import (
	"github.com/datazip-inc/sieve"
	_ "github.com/datazip-inc/sieve/examples/shapes" // registering example shapes
)

func main() {
	sieve.Run()
}
