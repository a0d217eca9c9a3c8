//go:build ignore

//kage:unit pixels

package main

// Uniform variables.
var ColorA vec3
var ColorB vec3

// srcPos carries the ribbon uv, x runs across the ribbon width.
func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	return vec4(mix(ColorA, ColorB, clamp(srcPos.x, 0, 1)), 1)
}
