package main

import (
	"log"

	"ticketsmaster/cmd"
)

func main() {
	if err := cmd.Start(); err != nil {
		log.Fatal(err)
	}
}
