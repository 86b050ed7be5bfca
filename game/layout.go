package game

import "sort"

// Layout geometry for the European table: 37 pockets (0-36), the
// numbered grid laid out as 12 rows x 3 columns with 0 above row one.
// Everything here is a pure function over that fixed layout; no state.

// Color is the pocket color on the wheel.
type Color string

const (
	ColorRed   Color = "red"
	ColorBlack Color = "black"
	ColorGreen Color = "green"
)

// WheelOrder is the physical clockwise pocket sequence starting at 0.
// Settlement only needs the flat number; this is exported for
// presentation layers that animate the wheel.
var WheelOrder = [37]int{
	0, 32, 15, 19, 4, 21, 2, 25, 17, 34, 6, 27, 13, 36, 11, 30, 8, 23, 10,
	5, 24, 16, 33, 1, 20, 14, 31, 9, 22, 18, 29, 7, 28, 12, 35, 3, 26,
}

// RedNumbers is the standard European red partition.
var RedNumbers = []int{1, 3, 5, 7, 9, 12, 14, 16, 18, 19, 21, 23, 25, 27, 30, 32, 34, 36}

// BlackNumbers is the complement of the red partition over 1-36.
var BlackNumbers = []int{2, 4, 6, 8, 10, 11, 13, 15, 17, 20, 22, 24, 26, 28, 29, 31, 33, 35}

var redSet = func() [37]bool {
	var s [37]bool
	for _, n := range RedNumbers {
		s[n] = true
	}
	return s
}()

// ColorOf returns the color of a pocket. Numbers outside 0-36 have no
// pocket; callers validate range before asking for a color.
func ColorOf(n int) Color {
	switch {
	case n == 0:
		return ColorGreen
	case redSet[n]:
		return ColorRed
	default:
		return ColorBlack
	}
}

// Columns holds the three vertical column partitions of the grid.
var Columns = [3][]int{
	{1, 4, 7, 10, 13, 16, 19, 22, 25, 28, 31, 34},
	{2, 5, 8, 11, 14, 17, 20, 23, 26, 29, 32, 35},
	{3, 6, 9, 12, 15, 18, 21, 24, 27, 30, 33, 36},
}

// Dozens holds the three dozen partitions.
var Dozens = [3][]int{
	{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
	{13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24},
	{25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 36},
}

// Even-money reference sets. Outside bets must cover exactly these
// sets; none of them contains 0, which is how every outside bet loses
// on a zero without special-casing in settlement.
var (
	LowNumbers  = rangeInts(1, 18)
	HighNumbers = rangeInts(19, 36)
	OddNumbers  = filterInts(1, 36, func(n int) bool { return n%2 == 1 })
	EvenNumbers = filterInts(1, 36, func(n int) bool { return n%2 == 0 })
)

func rangeInts(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for n := from; n <= to; n++ {
		out = append(out, n)
	}
	return out
}

func filterInts(from, to int, keep func(int) bool) []int {
	var out []int
	for n := from; n <= to; n++ {
		if keep(n) {
			out = append(out, n)
		}
	}
	return out
}

// tableRow returns the 1-based grid row of a number (1-36).
func tableRow(n int) int {
	return (n + 2) / 3
}

// IsValidSplit reports whether the two numbers are adjacent on the
// table: side by side in one row, stacked in one column, or one of the
// three zero splits (0-1, 0-2, 0-3).
func IsValidSplit(numbers []int) bool {
	if len(numbers) != 2 {
		return false
	}
	a, b := numbers[0], numbers[1]
	if a > b {
		a, b = b, a
	}
	if a == 0 {
		return b >= 1 && b <= 3
	}
	// Horizontal neighbors share a row and differ by one.
	if b-a == 1 && tableRow(a) == tableRow(b) {
		return true
	}
	// Vertical neighbors sit three apart.
	return b-a == 3
}

// IsValidStreet reports whether the three numbers form a full table
// row, or one of the two zero trios {0,1,2} and {0,2,3}.
func IsValidStreet(numbers []int) bool {
	if len(numbers) != 3 {
		return false
	}
	s := sortedCopy(numbers)
	if s[0] == 0 {
		return (s[1] == 1 && s[2] == 2) || (s[1] == 2 && s[2] == 3)
	}
	if s[0]%3 != 1 {
		return false
	}
	return s[1] == s[0]+1 && s[2] == s[0]+2
}

// IsValidCorner reports whether the four numbers meet at one grid
// intersection: the first-four {0,1,2,3}, or {n, n+1, n+3, n+4} with n
// not in the rightmost column and not past row eleven.
func IsValidCorner(numbers []int) bool {
	if len(numbers) != 4 {
		return false
	}
	s := sortedCopy(numbers)
	if s[0] == 0 {
		return s[1] == 1 && s[2] == 2 && s[3] == 3
	}
	n := s[0]
	if n%3 == 0 || n > 32 {
		return false
	}
	return s[1] == n+1 && s[2] == n+3 && s[3] == n+4
}

// IsValidLine reports whether the six numbers are two adjacent streets:
// six consecutive values starting at a row-leading number no later than
// 31.
func IsValidLine(numbers []int) bool {
	if len(numbers) != 6 {
		return false
	}
	s := sortedCopy(numbers)
	n := s[0]
	if n%3 != 1 || n > 31 {
		return false
	}
	for i := 1; i < 6; i++ {
		if s[i] != n+i {
			return false
		}
	}
	return true
}

func sortedCopy(numbers []int) []int {
	s := make([]int, len(numbers))
	copy(s, numbers)
	sort.Ints(s)
	return s
}
