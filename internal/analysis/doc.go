// Package analysis characterises recorded runs and parameter space.
//
//   - [Spectrum] and [DominantPeriod]: periodicity of a per-frame series,
//     usually links per frame under an orbiting pointer
//   - [Sweep]: mean metrics across a range of one field parameter
//   - [NewPortrait]: two series plotted against each other as ASCII
//
// A run recorded with the default orbit shows its period in the link count:
//
//	peak := analysis.DominantPeriod(links)
//	fmt.Printf("period %.0f frames\n", peak.Period)
package analysis
