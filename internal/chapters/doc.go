// Package chapters lays out the chapter table for a merge: one chapter per
// input file, contiguous and gapless, with start/end offsets accumulated as
// integer durations so boundaries stay exact across any number of inputs.
package chapters
