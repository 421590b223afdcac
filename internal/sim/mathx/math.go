package mathx

func FloorDiv(a, b int) int {
	// b > 0
	q := a / b
	r := a % b
	if r < 0 {
		q--
	}
	return q
}

// CeilDiv rounds a/b towards +inf. b > 0.
func CeilDiv(a, b int) int {
	return -FloorDiv(-a, b)
}

func MaxInt(a, b int) int {
	if a >= b {
		return a
	}
	return b
}

func MinInt(a, b int) int {
	if a <= b {
		return a
	}
	return b
}

func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
