package main

import (
	"log"
	"os"
	"strconv"

	"finhealth/cmd"
)

func main() {
	apiHandler, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}

	port := 3009
	if p := os.Getenv("FINHEALTH_PORT"); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			log.Fatalf("invalid FINHEALTH_PORT %q: %v", p, err)
		}
	}

	err = apiHandler.StartApi(port)
	if err != nil {
		log.Fatal(err)
	}
}
