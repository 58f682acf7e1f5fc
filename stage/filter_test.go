package stage

import (
	"context"
	"reflect"
	"testing"
)

func TestFilters_FromRegistry(t *testing.T) {
	tests := []struct {
		stage string
		input any
		want  any
	}{
		{NameFilterHigh, []float64{22.5, 65, 50, 51}, []any{65.0, 51.0}},
		{NameFilterHigh, []any{80, "90", "warm", nil}, []any{80, "90"}},
		{NameFilterLarge, []int{100, -150, 75, 200, -100}, []any{-150, 200}},
		{NameFilterLarge, []int{}, []any{}},
		{NameFilterHigh, "action,login", "action,login"},
		{NameFilterHigh, []byte("60,70"), []byte("60,70")},
	}
	r := NewRegistry()
	for _, tt := range tests {
		t.Run(tt.stage, func(t *testing.T) {
			s, ok := r.Get(tt.stage)
			if !ok {
				t.Fatalf("%s not registered", tt.stage)
			}
			got, err := s.Process(context.Background(), tt.input)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("%s(%v) = %#v, want %#v", tt.stage, tt.input, got, tt.want)
			}
		})
	}
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	in := []int{10, 200, 30}
	c, err := NewRegistry().Build(NameInput, NameFilterLarge, NameOutput)
	if err != nil {
		t.Fatal(err)
	}
	out, err := c.Run(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(out, []any{200}) {
		t.Errorf("unexpected output %v", out)
	}
	if !reflect.DeepEqual(in, []int{10, 200, 30}) {
		t.Errorf("input changed: %v", in)
	}
}

func TestFilter_CustomPredicate(t *testing.T) {
	even := Filter("even", func(v any) bool {
		n, ok := v.(int)
		return ok && n%2 == 0
	})
	if even.Name() != "even" {
		t.Errorf("unexpected name %q", even.Name())
	}
	out, _ := even.Process(context.Background(), [3]int{1, 2, 4})
	if !reflect.DeepEqual(out, []any{2, 4}) {
		t.Errorf("unexpected output %v", out)
	}
}
