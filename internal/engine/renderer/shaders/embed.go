// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// DisplaceVertexShader offsets plane vertices along their normal by the
// displacement map's red channel.
//
//go:embed displace.vert
var DisplaceVertexShader string

// DisplaceFragmentShader shades the plane with its albedo map under ambient
// light.
//
//go:embed displace.frag
var DisplaceFragmentShader string

// SolidVertexShader is the vertex shader for flat-colored overlay quads.
//
//go:embed solid.vert
var SolidVertexShader string

// SolidFragmentShader is the fragment shader for flat-colored overlay quads.
//
//go:embed solid.frag
var SolidFragmentShader string

// TextVertexShader is the vertex shader for overlay glyph quads.
//
//go:embed text.vert
var TextVertexShader string

// TextFragmentShader samples glyph coverage from the font atlas.
//
//go:embed text.frag
var TextFragmentShader string
