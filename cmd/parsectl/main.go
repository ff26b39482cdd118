// parsectl parses one address from the command line and prints the
// resulting fields as JSON. No match prints an empty object; the exit
// code is zero either way.
//
//	parsectl location "123 Main St, Toronto, ON"
//	parsectl intersection "Yonge St & Bloor St, Toronto, ON"
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/street-parser/app/models"
	"github.com/street-parser/internal/grammar"
	"github.com/street-parser/internal/lexicon"
	"github.com/street-parser/internal/parser"
)

func main() {
	avoidRedundant := flag.Bool("avoid-redundant-type", false, "clear the street type when it already appears in the street name")
	pretty := flag.Bool("pretty", false, "indent the JSON output")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		usage()
		os.Exit(2)
	}

	command := args[0]
	input := strings.Join(args[1:], " ")

	if !models.IsValidCommand(command) {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", command)
		usage()
		os.Exit(2)
	}

	lex := lexicon.New()
	opts := parser.Options{AvoidRedundantType: *avoidRedundant}
	p := parser.New(grammar.New(lex), opts, zap.NewNop())

	var fields map[string]string
	switch command {
	case models.CommandAddress:
		fields = p.ParseAddress(input)
	case models.CommandInformal:
		fields = p.ParseInformalAddress(input)
	case models.CommandIntersection:
		fields = p.ParseIntersection(input)
	default:
		fields = p.ParseLocation(input)
	}
	if fields == nil {
		fields = map[string]string{}
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(fields); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: parsectl [flags] <command> <address>

commands:
  location      try formal parse, fall back to informal; intersections detected
  address       formal parse only
  informal      informal parse only
  intersection  intersection parse only

flags:
`)
	flag.PrintDefaults()
}
