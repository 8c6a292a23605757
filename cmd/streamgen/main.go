package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/streamkit/stream/generate"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage of streamgen:\n")
	fmt.Fprintf(os.Stderr, "\tstreamgen [flags] -type T[,T...] [package]\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
}

func main() {
	typeNames := ""
	flag.StringVar(&typeNames, "type", "", "comma-separated names of producer types (required)")
	output := ""
	flag.StringVar(&output, "output", "", "output file name; defaults to <type>_stream.go")
	flag.Usage = usage
	flag.Parse()

	if len(typeNames) == 0 {
		fmt.Fprintf(os.Stderr, "missing type names (-type is required)\n")
		flag.Usage()
		os.Exit(2)
	}

	err := generate.Generate(generate.Options{
		Types:    strings.Split(typeNames, ","),
		Patterns: flag.Args(),
		Output:   output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
