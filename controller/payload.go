package controller

import "github.com/sheetkernel/engine/base"

// Payload is spec.md §4.8's single mutation entry point: each payload
// knows how to transform a Status in place and which vertices that
// transformation dirties. Apply returning an error refuses the payload
// entirely — Controller.ApplyTransaction rolls the whole transaction back
// rather than applying a partial Status (spec.md §7: "typed errors bubble
// to the payload applier which either refuses the payload ... or applies
// a partial result according to the payload's documented semantics" — all
// payloads here choose refusal, the simpler and safer of the two).
type Payload interface {
	Apply(s *Status) ([]base.SheetCell, error)
}
