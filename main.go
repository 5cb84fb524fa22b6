// main.go
package main

import (
	"log"

	"github.com/Jethin10/Hack-FInder/cmd"
)

func main() {
	if err := cmd.Start(); err != nil {
		log.Fatal(err)
	}
}
