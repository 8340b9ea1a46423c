// Package pixel implements the monochrome color model and page image used by flip-dot signs.
//
// The types are compatible with Go's native [color.Color] and [image.Image] / [draw.Image]
// interfaces, so anything that can draw onto a [draw.Image] can draw onto a page.
package pixel
