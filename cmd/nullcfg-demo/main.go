// Command nullcfg-demo runs Core A (the null-CFG pruner) over one or
// more JSON IR fixtures, printing how many edges each function's CFG
// had pruned. It stands in for a real driver wired to go/packages and
// go/ssa the way cmd/knil/main.go is (out of scope here, spec.md §1):
// loading an already-built program representation is someone else's
// job, and this module starts from whatever IR it's handed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/augurlabs/nullcfg/nullcfg"
	"github.com/augurlabs/nullcfg/driver"
)

var debug = flag.Bool("debug", false, "pp-dump solver states and deleted edges")

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: nullcfg-demo [-debug] fixture.json [fixture.json ...]")
		os.Exit(1)
	}

	targets := make([]driver.Target, 0, len(args))
	for _, path := range args {
		fn, cfg, ms, err := loadFixture(path)
		if err != nil {
			log.Fatalf("loading %s: %v", path, err)
		}
		targets = append(targets, driver.Target{
			Name:   path,
			Fn:     fn,
			CFG:    cfg,
			Config: &nullcfg.Config{Debug: *debug, MethodState: ms},
		})
	}

	results, err := driver.RunAll(context.Background(), targets, nil)
	if err != nil {
		log.Fatal(err)
	}

	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("%s: error: %v\n", r.Name, r.Err)
			continue
		}
		n, _ := r.Analysis.NumDeletedEdges()
		fmt.Printf("%s: pruned %d edge(s)\n", r.Name, n)
	}
}
