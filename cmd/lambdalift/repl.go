package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/sunholo/lambdalift/internal/core"
	"github.com/sunholo/lambdalift/internal/lift"
	"github.com/sunholo/lambdalift/internal/lifterrors"
)

// replState holds the module currently loaded into the REPL, if any.
type replState struct {
	module *core.Module
	opts   lift.Options
}

// runREPL starts an interactive session for loading a JSON-encoded
// module, transforming it, and inspecting the result. Commands are
// prefixed with ':', following the teacher's REPL convention
// (internal/repl/repl.go).
func runREPL() {
	state := &replState{opts: lift.DefaultOptions()}

	line := liner.NewLiner()
	defer line.Close()

	historyFile := filepath.Join(os.TempDir(), ".lambdalift_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	line.SetCompleter(func(input string) (c []string) {
		if strings.HasPrefix(input, ":") {
			commands := []string{":help", ":quit", ":load", ":lift", ":dump", ":reset"}
			for _, cmd := range commands {
				if strings.HasPrefix(cmd, input) {
					c = append(c, cmd)
				}
			}
		}
		return
	})

	fmt.Printf("%s %s\n", bold("lambdalift"), bold(Version))
	fmt.Println("Type :help for help, :quit to exit")
	fmt.Println()

	for {
		input, err := line.Prompt("λ> ")
		if err == io.EOF {
			fmt.Println(green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(input, ":") {
			if handleREPLCommand(state, input) {
				break
			}
			continue
		}

		fmt.Fprintf(os.Stderr, "%s: expected a command; type :help\n", yellow("Hint"))
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

// handleREPLCommand runs one ':'-prefixed command. It returns true
// when the REPL should exit.
func handleREPLCommand(state *replState, input string) bool {
	fields := strings.Fields(input)
	switch fields[0] {
	case ":quit", ":q", ":exit":
		fmt.Println(green("Goodbye!"))
		return true

	case ":help":
		fmt.Println("  :load <path>   Load a JSON-encoded module")
		fmt.Println("  :lift          Transform the loaded module")
		fmt.Println("  :dump          Print the loaded module's source rendering")
		fmt.Println("  :reset         Discard the loaded module")
		fmt.Println("  :quit          Exit the REPL")

	case ":load":
		if len(fields) < 2 {
			fmt.Fprintf(os.Stderr, "%s: usage :load <path>\n", red("Error"))
			return false
		}
		data, err := os.ReadFile(fields[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			return false
		}
		m, err := core.UnmarshalModule(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			return false
		}
		state.module = m
		fmt.Printf("%s loaded module %s (%d bindings)\n", green("✓"), bold(m.Name), len(m.Bindings))

	case ":dump":
		if state.module == nil {
			fmt.Fprintf(os.Stderr, "%s: no module loaded; use :load\n", red("Error"))
			return false
		}
		fmt.Println(state.module.String())

	case ":lift":
		if state.module == nil {
			fmt.Fprintf(os.Stderr, "%s: no module loaded; use :load\n", red("Error"))
			return false
		}
		before := len(state.module.Bindings)
		result, err := runLift(state.module, state.opts)
		if err != nil {
			if rep, ok := lifterrors.AsReport(err); ok {
				j, _ := rep.ToJSON()
				fmt.Fprintf(os.Stderr, "%s: %s\n", red("Invariant violation"), j)
			} else {
				fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			}
			return false
		}
		fmt.Printf("%s %d top-level bindings before, %d after\n", cyan("→"), before, len(result.Bindings))
		fmt.Println(result.String())
		state.module = result

	case ":reset":
		state.module = nil
		fmt.Printf("%s module discarded\n", green("✓"))

	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command '%s'\n", red("Error"), fields[0])
	}
	return false
}
