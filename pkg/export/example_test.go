package export_test

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/mindmap/pkg/export"
	"github.com/matzehuels/mindmap/pkg/textlayout"
)

func ExampleFileName() {
	fmt.Println(export.FileName("notes", 1700000000123, 1, 1))
	fmt.Println(export.FileName("notes", 1700000000123, 2, 3))
	// Output:
	// notes-1700000000123.png
	// notes-1700000000123-2.png
}

func ExampleExporter_ExportText() {
	saver := &export.MemorySaver{}
	e := export.New(
		export.WithSaver(saver),
		export.WithClock(func() time.Time { return time.UnixMilli(1000) }),
		export.WithGeometry(textlayout.PageGeometry{
			Width: 120, Height: 150, Margin: 10,
			HeaderHeight: 20, FooterHeight: 10, LineHeight: 30,
			FontSize: 10, TitleSize: 12,
		}),
		export.WithMeasurer(textlayout.FixedMeasurer{Advance: 10}),
	)

	files, err := e.ExportText(context.Background(), "Notes", strings.Repeat("x", 70), "notes")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, f := range files {
		fmt.Printf("%s page %d/%d\n", f.Name, f.Page, f.Total)
	}
	// Output:
	// notes-1000-1.png page 1/3
	// notes-1000-2.png page 2/3
	// notes-1000-3.png page 3/3
}
