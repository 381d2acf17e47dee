package engine

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Chandima-Prabhath/Aura/apperrors"
)

func TestParseSelection(t *testing.T) {
	t.Parallel()
	available := []int{1, 2, 3, 10, 11}

	tests := []struct {
		name string
		expr string
		want []int
	}{
		{name: "range plus single", expr: "1-3,10", want: []int{1, 2, 3, 10}},
		{name: "single", expr: "2", want: []int{2}},
		{name: "first occurrence order kept", expr: "10,1-3", want: []int{10, 1, 2, 3}},
		{name: "duplicates collapse to first position", expr: "2,1-3,2", want: []int{2, 1, 3}},
		{name: "whitespace tolerated", expr: " 1 , 2-3 ", want: []int{1, 2, 3}},
		{name: "all keyword", expr: "all", want: []int{1, 2, 3, 10, 11}},
		{name: "empty selects all", expr: "", want: []int{1, 2, 3, 10, 11}},
		{name: "single element range", expr: "3-3", want: []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSelection(tt.expr, available)
			if err != nil {
				t.Fatalf("ParseSelection(%q): %v", tt.expr, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSelection(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestParseSelectionErrors(t *testing.T) {
	t.Parallel()
	available := []int{1, 2, 3, 10, 11}

	tests := []struct {
		name string
		expr string
	}{
		{name: "reversed range", expr: "3-1"},
		{name: "non integer", expr: "abc"},
		{name: "non integer range end", expr: "1-x"},
		{name: "out of range single", expr: "99"},
		{name: "range crossing unavailable numbers", expr: "2-5"},
		{name: "empty token", expr: "1,,2"},
		{name: "trailing comma", expr: "1,"},
		{name: "negative number", expr: "-2"},
		{name: "dangling range", expr: "1-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSelection(tt.expr, available)
			if err == nil {
				t.Fatalf("ParseSelection(%q) = %v, want ValidationError", tt.expr, got)
			}
			if !errors.Is(err, &apperrors.ValidationError{}) {
				t.Errorf("error is %T, want *apperrors.ValidationError", err)
			}
		})
	}
}
