package pipeline_test

import (
	"context"
	"fmt"

	"github.com/ardnew/quark/lang"
	"github.com/ardnew/quark/log"
	"github.com/ardnew/quark/pipeline"
	"github.com/ardnew/quark/render/markdown"
	"github.com/ardnew/quark/stdlib"
)

func Example() {
	p := pipeline.New(
		pipeline.WithLogger(log.Discard()),
		pipeline.WithRenderer(markdown.New()),
		pipeline.WithLibraries(stdlib.All()...),
		pipeline.WithWrap(false),
	)

	out, err := p.Execute(context.Background(), "# Totals\n\n.sum {2} {3}\n")
	if err != nil {
		fmt.Println(err)

		return
	}

	fmt.Print(out)
	// Output:
	// # Totals
	//
	// 5
}

func ExamplePipeline_Tree() {
	p := pipeline.New(
		pipeline.WithLogger(log.Discard()),
		pipeline.WithLibraries(stdlib.All()...),
	)

	root, err := p.Tree(context.Background(), ".uppercase {quark}\n", true)
	if err != nil {
		fmt.Println(err)

		return
	}

	fmt.Println(lang.TextOf(root.Children...))
	// Output: QUARK
}
