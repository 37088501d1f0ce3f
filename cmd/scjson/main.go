// scjson - condensed JSON codec CLI tool
//
// Usage:
//
//	scjson convert <in> <out>    Convert between textual and condensed
//	                             binary form, chosen by each path's
//	                             extension (.cjson/.bin = binary).
//	scjson to-json [file]        Decode (text or condensed) and print text.
//	scjson to-cjson [file]       Decode (text or condensed) and print
//	                             condensed binary to stdout.
//	scjson version               Print version info.
//
// If no file is given to to-json/to-cjson, input is read from stdin as
// text.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/Dugy/serialisable/serialisable"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "convert":
		cmdConvert(os.Args[2:])
	case "to-json":
		cmdToJSON(os.Args[2:])
	case "to-cjson":
		cmdToCJSON(os.Args[2:])
	case "version":
		fmt.Println("scjson", version)
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "scjson: unknown command %q\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: scjson <convert|to-json|to-cjson|version> [args]")
}

func fatalUsage(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "scjson: "+format+"\n", args...)
	os.Exit(1)
}

func fatalIO(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "scjson: "+format+"\n", args...)
	os.Exit(2)
}

func cmdConvert(args []string) {
	flags := pflag.NewFlagSet("convert", pflag.ContinueOnError)
	precision := flags.String("precision", "half", "preferred float precision for binary output: half, single, double")
	if err := flags.Parse(args); err != nil {
		fatalUsage("%v", err)
	}
	rest := flags.Args()
	if len(rest) != 2 {
		fatalUsage("convert requires <in> <out>")
	}

	v, err := serialisable.LoadFile(rest[0])
	if err != nil {
		fatalIO("%v", err)
	}

	opts := serialisable.DefaultCondensedEncodeOptions()
	switch *precision {
	case "half":
		opts.PreferredPrecision = serialisable.PrecisionHalf
	case "single":
		opts.PreferredPrecision = serialisable.PrecisionSingle
	case "double":
		opts.PreferredPrecision = serialisable.PrecisionDouble
	default:
		fatalUsage("unknown --precision %q", *precision)
	}

	if err := serialisable.SaveFileWithPrecision(rest[1], v, opts); err != nil {
		fatalIO("%v", err)
	}
}

func cmdToJSON(args []string) {
	v, err := readInput(args)
	if err != nil {
		fatalIO("%v", err)
	}
	fmt.Println(serialisable.EncodeText(v, serialisable.DefaultTextEncodeOptions()))
}

func cmdToCJSON(args []string) {
	v, err := readInput(args)
	if err != nil {
		fatalIO("%v", err)
	}
	data := serialisable.EncodeCondensed(v, serialisable.DefaultCondensedEncodeOptions())
	if _, err := os.Stdout.Write(data); err != nil {
		fatalIO("%v", err)
	}
}

func readInput(args []string) (serialisable.Value, error) {
	if len(args) > 0 && args[0] != "-" {
		return serialisable.LoadFile(args[0])
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return serialisable.Value{}, fmt.Errorf("reading stdin: %w", err)
	}
	return serialisable.DecodeText(data)
}
