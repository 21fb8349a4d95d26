package main

import (
	"fmt"
	"strings"

	"github.com/thatisuday/commando"
)

func runMatchCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(mustFlagString(flags["trace"], "trace"))
	family := strings.TrimSpace(args["family"].Value)
	cs, err := parseCharset(flags["charset"])
	if err != nil {
		fatalf("%v", err)
	}
	provider := newProvider(flags)
	size := mustFlagInt(flags["size"], "size")
	f, err := provider.CreatePlatformFont(family, size, cs)
	if err != nil {
		fatalf("cannot match %q: %v", family, err)
	}
	defer f.Close()

	fmt.Printf("Request: %q %d %s\n", family, size, cs)
	fmt.Printf("Matched: %s\n", f.Name())
	if sf := f.Font(); sf != nil {
		fmt.Printf("File: %s (index %d)\n", sf.Filepath, sf.Index)
	} else {
		fmt.Println("File: built-in fixed face")
	}
	fmt.Printf("Baseline: %d px\n", f.Baseline())
	fmt.Printf("Height: %d px\n", f.Height())
}
