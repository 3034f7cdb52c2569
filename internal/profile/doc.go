// Package profile computes k-means colour profiles for pattern images.
//
// A profile describes an image as k colour clusters: each cluster has a centre
// and the share of pixels assigned to it. Profiles are computed for several
// colour schemas and for every k from 1 to Options.MaxK, which makes them an
// expensive step that callers opt into explicitly.
//
// Fully transparent pixels are not sampled, so Profiles.Pixels and every
// cluster percentage refer to the visible part of the image only.
package profile
