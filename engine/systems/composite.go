package systems

import (
	"github.com/spaghettifunk/anima-draw/engine/shapes"
)

/**
 * @brief ExpandComposites appends src to dst with every composite shape
 * replaced by its primitives. An arrow becomes its shaft followed by its
 * head; both keep the arrow's style and transform. Order is preserved.
 */
func ExpandComposites(src, dst []shapes.Descriptor) []shapes.Descriptor {
	for _, d := range src {
		arrow, ok := d.Shape.(shapes.Arrow)
		if !ok {
			dst = append(dst, d)
			continue
		}
		shaft, head := arrow.Split()
		dst = append(dst,
			shapes.Descriptor{Shape: shaft, Style: d.Style, Transform: d.Transform},
			shapes.Descriptor{Shape: head, Style: d.Style, Transform: d.Transform},
		)
	}
	return dst
}
