package main

import (
	"bufio"
	"log"
	"os"
	"strings"

	"packetirc/internal/pkg/app"
)

func main() {
	// the packet switch hands over the operator's callsign as the first
	// line of standard input before any chat traffic
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		log.Fatal("no callsign received on standard input")
	}

	callsign := strings.TrimSpace(line)
	if callsign == "" {
		log.Fatal("empty callsign received on standard input")
	}

	// keep reading through the same buffered reader: it may already hold
	// input typed right after the callsign
	if err := app.New(callsign, reader); err != nil {
		log.Fatal(err)
	}
}
