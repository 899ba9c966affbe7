package calc

import (
	"fmt"

	"github.com/sheetkernel/engine/base"
	"github.com/sheetkernel/engine/container"
	"github.com/sheetkernel/engine/ids"
	"github.com/sheetkernel/engine/navigator"
)

// ContainerSource implements ValueSource over a live DataContainer,
// reading precedent values and materializing ranges through Navigator
// exactly as Controller does for any other read (spec.md §4.4, §4.6).
// Cont is reassigned by Engine.Recalculate after each vertex settles, so
// later vertices in the same pass see their precedents' freshly
// computed values rather than stale ones.
type ContainerSource struct {
	Nav  *navigator.Navigator
	Data map[ids.SheetId]*navigator.Data
	Cont *container.Container
}

// NewContainerSource builds a ContainerSource over an initial container.
func NewContainerSource(nav *navigator.Navigator, data map[ids.SheetId]*navigator.Data, cont *container.Container) *ContainerSource {
	return &ContainerSource{Nav: nav, Data: data, Cont: cont}
}

func (s *ContainerSource) CellValue(sheet ids.SheetId, cell base.CellId) base.CellValue {
	return s.Cont.CellOrBlank(sheet, cell).Value
}

// RangeValues reads every cell inside the rectangle spanned by from/to,
// re-resolving both corners through Navigator on every call since a
// range's current materialization moves as rows/columns are inserted or
// deleted around it (spec.md §4.6 "range membership is re-evaluated
// whenever the range's endpoints change index").
func (s *ContainerSource) RangeValues(sheet ids.SheetId, from, to base.CellId) ([]base.CellValue, error) {
	data, ok := s.Data[sheet]
	if !ok {
		return nil, fmt.Errorf("calc: unknown sheet %d", sheet)
	}
	fr, fc, err := s.Nav.FetchCellIdx(sheet, data, from)
	if err != nil {
		return nil, err
	}
	tr, tc, err := s.Nav.FetchCellIdx(sheet, data, to)
	if err != nil {
		return nil, err
	}
	if fr > tr {
		fr, tr = tr, fr
	}
	if fc > tc {
		fc, tc = tc, fc
	}

	out := make([]base.CellValue, 0, (tr-fr+1)*(tc-fc+1))
	for r := fr; r <= tr; r++ {
		for c := fc; c <= tc; c++ {
			cell, err := s.Nav.FetchCellId(sheet, data, r, c)
			if err != nil {
				return nil, err
			}
			out = append(out, s.CellValue(sheet, cell))
		}
	}
	return out, nil
}
