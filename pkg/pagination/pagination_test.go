package pagination

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   Params
		want Params
	}{
		{"defaults", Params{}, Params{Limit: DefaultLimit}},
		{"cap", Params{Limit: 500, Offset: 10}, Params{Limit: MaxLimit, Offset: 10}},
		{"negative offset", Params{Limit: 5, Offset: -3}, Params{Limit: 5}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tc.in); got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestWindow(t *testing.T) {
	t.Parallel()

	start, end := Window(10, Params{Limit: 3, Offset: 8})
	if start != 8 || end != 10 {
		t.Fatalf("expected [8,10), got [%d,%d)", start, end)
	}

	start, end = Window(10, Params{Limit: 3, Offset: 50})
	if start != 10 || end != 10 {
		t.Fatalf("expected an empty window past the end, got [%d,%d)", start, end)
	}

	start, end = Window(0, Params{})
	if start != 0 || end != 0 {
		t.Fatalf("expected an empty window on empty input, got [%d,%d)", start, end)
	}
}
