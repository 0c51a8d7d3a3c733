// Package imaging provides the selective recoloring engine.
//
// The engine has three parts, used in this order when a selection is
// committed:
//
//  1. Rasterize turns a hand-drawn Polygon into a Mask.
//  2. Recolor copies a PixelBuffer and, inside the mask's bounding box,
//     replaces the hue and saturation of masked pixels with those of the
//     target Color while keeping each pixel's lightness.
//  3. RGBToHSL and HSLToRGB do the color space math for step 2.
//
// Loading, display downscaling and PNG export live here as well, but the
// core functions never decode or encode images.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Polygon vertices sit on pixel corners: pixel (x, y) covers the unit
//     square from (x, y) to (x+1, y+1)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Fill Rule
//
// Polygons are filled with the nonzero winding rule. Any pixel with
// non-zero coverage is inside the mask.
//
// # Color Representation
//
// RGBToHSL and HSLToRGB work with hue, saturation and lightness in [0,1].
// SampleColor reports HSL in degrees and percent for readability.
//
// # Thread Safety
//
// All functions are stateless. Recolor splits its scan across goroutines
// internally but never writes to its inputs, so it can be called
// concurrently on shared source buffers and masks.
package imaging
