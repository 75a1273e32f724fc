package sink

import (
	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/layout"
)

// RenderJSON serializes the layout for external tools and the visualize
// command.
func RenderJSON(l *layout.Layout) ([]byte, error) {
	if l == nil {
		return nil, errors.New(errors.ErrCodeEmptyGraph, "nothing to render")
	}
	data, err := layout.Marshal(l)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncode, err, "encode layout")
	}
	return data, nil
}
