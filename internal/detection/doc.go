// Package detection separates flat-colored shapes from a white background
// and summarizes the colors they use.
//
// # Algorithm Overview
//
// The detection pipeline is a fixed sequence of pixel operations:
//
//  1. Foreground Mask: mark pixels whose Euclidean distance from pure white
//     exceeds WhiteDistanceThreshold
//  2. Cleaning: morphological opening then closing with a 3x3 neighborhood,
//     removing specks and filling pinholes
//  3. Labeling: group foreground pixels into 8-connected components and
//     discard those below a minimum area
//  4. Averaging: compute the mean color of each surviving component
//  5. Deduplication: greedily cluster the mean colors by a distance tolerance
//
// # Ordering
//
// Components are discovered in row-major order of their first pixel (top to
// bottom, then left to right). Color clustering is order dependent, so this
// order is preserved through every stage to keep results reproducible.
//
// # Thresholds
//
// The two comparisons in the pipeline differ on purpose:
//   - A pixel is foreground only if its distance from white is strictly
//     greater than the threshold.
//   - A color starts a new cluster only if its distance to every anchor is
//     strictly greater than the tolerance, so a color exactly at the
//     tolerance merges.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Bounding boxes use inclusive top-left and exclusive bottom-right
//
// # Limitations
//
// These algorithms assume clean, flat-colored shapes on white:
//   - Touching shapes of different colors merge into one component
//   - Shapes lighter than the white threshold are treated as background
//   - Anti-aliased edges shift a component's mean color slightly
package detection
