package functions

// Bond-math helpers ported from
// original_source/crates/controller/src/calc_engine/calculator/math/bond.rs
// onto the Go 1900-epoch serial date helpers in datetime.go (spec.md
// §4.7, §8 scenario 3). freq must be 1, 2, or 4 (annual, semiannual,
// quarterly coupons); an invalid freq reports ok=false so callers can
// surface #NUM! instead of panicking.

// couppcd returns the coupon date immediately preceding settle, walking
// backward from maturity in -12/freq month steps.
func couppcd(settle, maturity uint32, freq int) (uint32, bool) {
	if freq != 1 && freq != 2 && freq != 4 {
		return 0, false
	}
	settleDate := serialToTime(settle)
	maturityDate := serialToTime(maturity)
	deltaMonth := -12 / freq

	for idx := 1; ; idx++ {
		curr := addMonths(maturityDate, idx*deltaMonth)
		if curr.Before(settleDate) {
			if lastDayOfMonth(maturityDate) {
				curr = endOfMonth(curr)
			}
			return dateToSerial(curr.Year(), int(curr.Month()), curr.Day()), true
		}
	}
}

// coupncd returns the coupon date immediately following settle.
func coupncd(settle, maturity uint32, freq int) (uint32, bool) {
	if freq != 1 && freq != 2 && freq != 4 {
		return 0, false
	}
	settleDate := serialToTime(settle)
	maturityDate := serialToTime(maturity)
	deltaMonth := -12 / freq

	for idx := 1; ; idx++ {
		curr := addMonths(maturityDate, idx*deltaMonth)
		if curr.Before(settleDate) {
			if lastDayOfMonth(maturityDate) {
				curr = endOfMonth(curr)
			}
			curr = addMonths(curr, -deltaMonth)
			if curr.After(maturityDate) {
				curr = maturityDate
			}
			return dateToSerial(curr.Year(), int(curr.Month()), curr.Day()), true
		}
	}
}

// coupnum returns the number of coupon periods between settle and
// maturity.
func coupnum(settle, maturity uint32, freq int) (uint32, bool) {
	if freq != 1 && freq != 2 && freq != 4 {
		return 0, false
	}
	pcd, ok := couppcd(settle, maturity, freq)
	if !ok {
		return 0, false
	}
	pcDate := serialToTime(pcd)
	maturityDate := serialToTime(maturity)

	months := (maturityDate.Year() - pcDate.Year()) * 12
	if int(maturityDate.Month()) >= int(pcDate.Month()) {
		months += int(maturityDate.Month()) - int(pcDate.Month())
	} else {
		months -= int(pcDate.Month()) - int(maturityDate.Month())
	}
	return uint32(months * freq / 12), true
}
