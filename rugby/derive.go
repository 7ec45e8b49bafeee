/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package rugby

const StageFinal = "Final"

// Result is a Match plus the fields computed from it once per load.
type Result struct {
	Match
	Winner string
	Stage  string
}

// Derive computes the winner and stage of every match, preserving order.
func Derive(matches []Match, cls Classifier) []Result {
	ret := make([]Result, 0, len(matches))
	for _, m := range matches {
		r := Result{
			Match:  m,
			Winner: InferWinner(m),
		}
		if cls.IsFinal(m.Competition) {
			r.Stage = StageFinal
		}
		ret = append(ret, r)
	}

	return ret
}
