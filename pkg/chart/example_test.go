package chart_test

import (
	"fmt"

	"github.com/plotwire/plotwire/pkg/chart"
	"github.com/plotwire/plotwire/pkg/dataset"
	"github.com/plotwire/plotwire/pkg/dendro"
	"github.com/plotwire/plotwire/pkg/figure"
)

func ExampleNew() {
	// Bind a table with a deferred color mapping: the cyl column is not
	// evaluated here, only remembered against the bound dataset.
	tbl, _ := dataset.FromColumns(
		[]string{"wt", "mpg", "cyl"},
		map[string]dataset.Column{
			"wt":  {2.6, 2.9, 3.2},
			"mpg": {21.0, 22.8, 21.4},
			"cyl": {"four", "four", "six"},
		},
	)

	w, _ := chart.New(tbl, figure.Attrs{
		"x":     dataset.Col("wt"),
		"y":     dataset.Col("mpg"),
		"color": dataset.Col("cyl"),
	})

	as := w.Figure.AttributeSets[w.Figure.CurrentDatasetID]
	fmt.Println("Dependencies:", len(w.Dependencies))
	fmt.Println("Color mapped:", as.Has(figure.AesColor))
	fmt.Println("Symbol mapped:", as.Has(figure.AesSymbol))
	// Output:
	// Dependencies: 3
	// Color mapped: true
	// Symbol mapped: false
}

func ExampleDendrogram() {
	// Two clusters merging at height 3.
	tree := &dendro.Tree{
		Height: 3,
		Left: &dendro.Tree{
			Height: 1,
			Left:   &dendro.Tree{Label: "a"},
			Right:  &dendro.Tree{Label: "b"},
		},
		Right: &dendro.Tree{
			Height: 2,
			Left:   &dendro.Tree{Label: "c"},
			Right:  &dendro.Tree{Label: "d"},
		},
	}

	w, _ := chart.Dendrogram(tree, dendro.Options{})
	fmt.Println("Traces:", len(w.Figure.Order))
	fmt.Println("Drag mode:", w.Figure.Layout.DragMode)
	fmt.Println("Selection group:", w.Figure.SelectionGroup)
	// Output:
	// Traces: 3
	// Drag mode: select
	// Selection group: A
}
