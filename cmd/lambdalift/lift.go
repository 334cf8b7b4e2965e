package main

import (
	"fmt"
	"os"

	"github.com/sunholo/lambdalift/internal/core"
	"github.com/sunholo/lambdalift/internal/lift"
	"github.com/sunholo/lambdalift/internal/lifterrors"
)

func liftFile(path, configPath, outPath string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read file '%s': %v\n", red("Error"), path, err)
		os.Exit(1)
	}

	module, err := core.UnmarshalModule(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot parse module: %v\n", red("Error"), err)
		os.Exit(1)
	}

	opts := lift.DefaultOptions()
	if configPath != "" {
		opts, err = lift.LoadOptions(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			os.Exit(1)
		}
	}

	result, err := runLift(module, opts)
	if err != nil {
		if rep, ok := lifterrors.AsReport(err); ok {
			j, _ := rep.ToJSON()
			fmt.Fprintf(os.Stderr, "%s: %s\n", red("Invariant violation"), j)
		} else {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		}
		os.Exit(1)
	}

	out, err := core.MarshalModule(result)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot encode result: %v\n", red("Error"), err)
		os.Exit(1)
	}

	if outPath == "" {
		fmt.Println(string(out))
		return
	}

	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot write '%s': %v\n", red("Error"), outPath, err)
		os.Exit(1)
	}
	fmt.Printf("%s Wrote %s\n", green("✓"), outPath)
}

// runLift recovers from the panic-based invariant violations of
// spec.md §7 and turns them into a returned error, matching the
// teacher's parser.ParseFile pattern of converting an internal panic
// into a value the caller can report without tearing down the whole
// process. The CLI's "lift" command still exits on error; the REPL's
// :lift command does not.
func runLift(module *core.Module, opts lift.Options) (result *core.Module, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = toError(r)
		}
	}()
	result = lift.Transform(module, opts)
	return result, nil
}

func toError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
