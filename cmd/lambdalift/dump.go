package main

import (
	"fmt"
	"os"

	"github.com/sunholo/lambdalift/internal/core"
)

func dumpFile(path string) {
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

	fmt.Printf("%s %s\n", cyan("module"), bold(module.Name))
	fmt.Println(module.String())
}
