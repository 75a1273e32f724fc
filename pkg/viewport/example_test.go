package viewport_test

import (
	"fmt"

	"github.com/matzehuels/mindmap/pkg/viewport"
)

func ExampleController_ZoomBy() {
	// Content point (50,50) sits under the viewport center (400,300).
	c := viewport.New(viewport.Size{W: 100, H: 100},
		viewport.WithTransform(viewport.Transform{Scale: 1, OffsetX: 350, OffsetY: 250}))

	c.ZoomBy(2, viewport.Point{X: 400, Y: 300})

	p := c.Transform().ToScreen(viewport.Point{X: 50, Y: 50})
	fmt.Printf("scale=%.1f screen=(%.0f,%.0f)\n", c.Transform().Scale, p.X, p.Y)
	// Output:
	// scale=2.0 screen=(400,300)
}

func ExampleFitToView() {
	t := viewport.FitToView(viewport.Size{W: 800, H: 600}, viewport.Size{W: 400, H: 100})
	fmt.Printf("scale=%.2f offset=(%.0f,%.0f)\n", t.Scale, t.OffsetX, t.OffsetY)
	// Output:
	// scale=1.90 offset=(20,205)
}
