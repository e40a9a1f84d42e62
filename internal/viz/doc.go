// Package viz turns trail points into pixels and colours.
//
//   - [Pipeline]: centering, X→Y→Z rotation, depth bias, perspective
//     projection and screen fit
//   - [Gradient]: linear RGBA interpolation along the trail
//   - [Canvas]: Braille-based pixel canvas with per-cell colour for
//     terminal hosts
//   - [Theme]: trail gradient presets with matching UI colours
package viz
