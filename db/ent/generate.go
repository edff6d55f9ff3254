//go:build ignore

// Run from the repository root: go run db/ent/generate.go
// Output lands in gen/ent and is not committed.
package main

import (
	"log"

	"entgo.io/ent/entc"
	"entgo.io/ent/entc/gen"
)

func main() {
	err := entc.Generate(
		"./db/ent/schema",
		&gen.Config{
			Target:  "gen/ent",
			Package: "github.com/docstreamhq/docstream/gen/ent",
			Schema:  "github.com/docstreamhq/docstream/db/ent/schema",
		},
	)
	if err != nil {
		log.Fatalf("ent codegen: %v", err)
	}
}
