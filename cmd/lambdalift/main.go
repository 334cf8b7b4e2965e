// Command lambdalift runs the free-variable abstraction and lambda
// lifting transformation over a typed core module stored as JSON.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	// Version info, set by ldflags during build.
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"

	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "Print version information")
		helpFlag    = flag.Bool("help", false, "Show help")
		configPath  = flag.String("config", "", "Path to a lift options YAML file")
		outPath     = flag.String("out", "", "Write output to this file instead of stdout")
	)

	flag.Parse()

	if *versionFlag {
		printVersion()
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	command := flag.Arg(0)

	switch command {
	case "lift":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("Error"))
			fmt.Println("Usage: lambdalift lift <module.json>")
			os.Exit(1)
		}
		liftFile(flag.Arg(1), *configPath, *outPath)

	case "dump":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("Error"))
			fmt.Println("Usage: lambdalift dump <module.json>")
			os.Exit(1)
		}
		dumpFile(flag.Arg(1))

	case "repl":
		runREPL()

	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command '%s'\n", red("Error"), command)
		printHelp()
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("lambdalift %s\n", bold(Version))
	if Commit != "unknown" {
		fmt.Printf("Commit: %s\n", Commit)
	}
	if BuildTime != "unknown" {
		fmt.Printf("Built:  %s\n", BuildTime)
	}
}

func printHelp() {
	fmt.Println(bold("lambdalift - free-variable abstraction and lambda lifting"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  lambdalift <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Printf("  %s <module.json>   Transform a module and print or write the result\n", cyan("lift"))
	fmt.Printf("  %s <module.json>   Pretty-print a module's source rendering\n", cyan("dump"))
	fmt.Printf("  %s                 Start the interactive REPL\n", cyan("repl"))
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  --version        Print version information")
	fmt.Println("  --help           Show this help message")
	fmt.Println("  --config <path>  Load lift options from a YAML file")
	fmt.Println("  --out <path>     Write lift's output module here instead of stdout")
}
