// Package correlate matches photos to dive-computer samples by time.
//
// Both sequences are sorted by Normalize, then Align walks them with a single
// forward-only cursor: for each photo the cursor stops at the first sample at
// or after the photo, which together with the sample before it forms the
// bracket. A photo matches when a previous sample exists and the next sample
// is within the tolerance. Depth is linearly interpolated inside the bracket;
// temperature is taken from the next sample.
//
// Plan threads the cursor and the last match's encoded fields through the
// loop as an explicit accumulator and produces one independent tag set per
// photo. Locate is the order-independent binary-search variant.
package correlate
