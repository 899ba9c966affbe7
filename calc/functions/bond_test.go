package functions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func serial(year, month, day int) uint32 { return dateToSerial(year, month, day) }

func TestCouppcd(t *testing.T) {
	settle := serial(2018, 12, 31)
	maturity := serial(2021, 2, 28)

	got, ok := couppcd(settle, maturity, 4)
	assert.True(t, ok)
	assert.Equal(t, serial(2018, 11, 30), got)

	got, ok = couppcd(settle, maturity, 1)
	assert.True(t, ok)
	assert.Equal(t, serial(2018, 2, 28), got)
}

func TestCoupncd(t *testing.T) {
	settle := serial(2018, 12, 31)
	maturity := serial(2021, 2, 28)

	got, ok := coupncd(settle, maturity, 4)
	assert.True(t, ok)
	assert.Equal(t, serial(2019, 2, 28), got)

	got, ok = coupncd(settle, maturity, 1)
	assert.True(t, ok)
	assert.Equal(t, serial(2019, 2, 28), got)
}

func TestCoupnum(t *testing.T) {
	settle := serial(2018, 12, 31)
	maturity := serial(2021, 2, 28)

	got, ok := coupnum(settle, maturity, 4)
	assert.True(t, ok)
	assert.Equal(t, uint32(9), got)

	got, ok = coupnum(settle, maturity, 2)
	assert.True(t, ok)
	assert.Equal(t, uint32(5), got)
}

func TestCoupFunctionsRejectInvalidFrequency(t *testing.T) {
	_, ok := couppcd(serial(2018, 1, 1), serial(2020, 1, 1), 3)
	assert.False(t, ok)
}
