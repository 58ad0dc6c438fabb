package client

import "math"

// Derived display metrics. All functions are pure; they never talk to
// the network and never mutate their inputs.

// OccupancyPercentage returns round(occupied/total*100) as an integer
// in [0,100]. A zero total yields 0 rather than dividing by zero.
func OccupancyPercentage(occupied, total int) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(float64(occupied) / float64(total) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// PendingFee is the unpaid remainder, floored at zero. Collections can
// exceed the billed total through timing skew; that never shows as a
// negative pending amount.
func PendingFee(totalFee, receivedFee float64) float64 {
	pending := totalFee - receivedFee
	if pending < 0 {
		return 0
	}
	return pending
}

// SalaryExpenseRatio returns round(salaries/expenses*100), or 0 when
// there are no expenses to compare against.
func SalaryExpenseRatio(salaries, expenses float64) int {
	if expenses <= 0 {
		return 0
	}
	return int(math.Round(salaries / expenses * 100))
}

// NetIncomeAfterSalaries is income minus salaries, signed. Rendering
// decides how to style a negative value; there is no separate code
// path.
func NetIncomeAfterSalaries(income, salaries float64) float64 {
	return income - salaries
}

// RollupRoomTypes derives the aggregate availability from a per-type
// breakdown. Occupied falls back to total minus available per row when
// the row does not carry it.
func RollupRoomTypes(breakdown []RoomTypeBreakdown) RoomAvailability {
	rollup := RoomAvailability{ByType: breakdown}
	for _, row := range breakdown {
		occupied := row.Occupied
		if occupied == 0 {
			occupied = row.Total - row.Available
		}
		rollup.RoomsTotal += row.Total
		rollup.RoomsAvailable += row.Available
		rollup.RoomsOccupied += occupied
	}
	return rollup
}

// TypeOccupancyPercentage applies the aggregate occupancy formula to
// one breakdown row.
func TypeOccupancyPercentage(row RoomTypeBreakdown) int {
	occupied := row.Occupied
	if occupied == 0 {
		occupied = row.Total - row.Available
	}
	return OccupancyPercentage(occupied, row.Total)
}
