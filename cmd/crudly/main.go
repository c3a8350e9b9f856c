package main

import (
	"log"
	"os"

	"github.com/google/gops/agent"
	"github.com/viant/crudly"
	"github.com/viant/crudly/cmd"
)

func main() {
	go func() {
		if err := agent.Listen(agent.Options{}); err != nil {
			log.Fatal(err)
		}
	}()
	if err := cmd.New(crudly.Version, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
