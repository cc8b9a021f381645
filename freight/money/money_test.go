package money

import "testing"

func TestPercentOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		amount Cents
		bps    int64
		want   Cents
	}{
		{9000, 1500, 1350},  // 15% of $90
		{9000, 500, 450},    // 5% of $90
		{10000, 0, 0},
		{1, 50, 0},          // 0.5% of a cent rounds to zero
		{999, 50, 5},        // 4.995 rounds half up
		{-9000, 1500, -1350},
	}
	for _, tc := range cases {
		if got := PercentOf(tc.amount, tc.bps); got != tc.want {
			t.Fatalf("PercentOf(%d, %d) = %d, want %d", tc.amount, tc.bps, got, tc.want)
		}
	}
}

func TestMulFloat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		rate Cents
		qty  float64
		want Cents
	}{
		{4500, 2, 9000},
		{850, 45, 38250},
		{4500, 0.1, 450},
		{333, 3.333, 1110}, // 1109.889 rounds to 1110
	}
	for _, tc := range cases {
		if got := MulFloat(tc.rate, tc.qty); got != tc.want {
			t.Fatalf("MulFloat(%d, %v) = %d, want %d", tc.rate, tc.qty, got, tc.want)
		}
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   Cents
		want string
	}{
		{43800, "438.00"},
		{0, "0.00"},
		{5, "0.05"},
		{-450, "-4.50"},
	}
	for _, tc := range cases {
		if got := tc.in.String(); got != tc.want {
			t.Fatalf("Cents(%d).String() = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFromDollarsAndMax(t *testing.T) {
	t.Parallel()

	if got := FromDollars(438); got != 43800 {
		t.Fatalf("FromDollars(438) = %d", got)
	}
	if got := Max(100, 200); got != 200 {
		t.Fatalf("Max(100, 200) = %d", got)
	}
	if got := Max(-5, -10); got != -5 {
		t.Fatalf("Max(-5, -10) = %d", got)
	}
}
