package pipeline

import (
	"testing"

	"babette/internal"
)

func TestNormalizeSize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		hint  SizeHint
		want  string
		age   internal.AgeGroup
	}{
		{name: "months suffix", input: "6m", want: "6 maand", age: internal.AgeBaby},
		{name: "months word", input: "18 MND", want: "18 maand", age: internal.AgeBaby},
		{name: "month range upper bound", input: "3/6m", want: "6 maand", age: internal.AgeBaby},
		{name: "years suffix", input: "8Y", want: "8 jaar", age: internal.AgeKids},
		{name: "years dutch", input: "4 jaar", want: "4 jaar", age: internal.AgeKids},
		{name: "teen years", input: "12y", want: "12 jaar", age: internal.AgeTeen},
		{name: "year range", input: "10-12Y", want: "12 jaar", age: internal.AgeTeen},
		{name: "leading zero", input: "06M", want: "6 maand", age: internal.AgeBaby},
		{name: "all zero months", input: "0M", want: "0 maand", age: internal.AgeBaby},
		{name: "adult letter", input: "M", want: "M", age: internal.AgeAdult},
		{name: "adult xl", input: "xl", want: "XL", age: internal.AgeAdult},
		{name: "unit size", input: "TU", want: "TU", age: internal.AgeKids},
		{name: "unit word", input: "unit", want: "TU", age: internal.AgeKids},
		{
			name:  "bare number with hint",
			input: "8",
			hint:  SizeHint{BareNumberIsYears: true},
			want:  "8 jaar",
			age:   internal.AgeKids,
		},
		{name: "bare number without hint", input: "8", want: "8", age: internal.AgeKids},
		{
			name:  "range override",
			input: "11/12",
			hint:  SizeHint{BareNumberIsYears: true, RangeOverrides: map[string]string{"11/12": "12 jaar", "13/14": "14 jaar"}},
			want:  "12 jaar",
			age:   internal.AgeTeen,
		},
		{
			name:  "lower bound hint",
			input: "2/3Y",
			hint:  SizeHint{RangeLowerBound: true},
			want:  "2 jaar",
			age:   internal.AgeKids,
		},
		{name: "garbage passthrough", input: "??", want: "??", age: internal.AgeKids},
		{
			name:  "garbage passthrough baby default",
			input: "newborn",
			hint:  SizeHint{DefaultAge: internal.AgeBaby},
			want:  "newborn",
			age:   internal.AgeBaby,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			label, age := NormalizeSize(tc.input, tc.hint)
			if label != tc.want {
				t.Fatalf("label got %q want %q", label, tc.want)
			}
			if age != tc.age {
				t.Fatalf("age got %s want %s", age, tc.age)
			}
		})
	}
}

func TestNormalizeSizeNeverEmptyAge(t *testing.T) {
	inputs := []string{"", "  ", "XXXL", "1/2/3", "36-", "m/j", "€", "one size"}
	for _, input := range inputs {
		_, age := NormalizeSize(input, SizeHint{})
		switch age {
		case internal.AgeBaby, internal.AgeKids, internal.AgeTeen, internal.AgeAdult:
		default:
			t.Fatalf("input %q produced invalid age %q", input, age)
		}
	}
}

func TestProductAge(t *testing.T) {
	cases := []struct {
		name string
		ages []internal.AgeGroup
		want internal.AgeGroup
	}{
		{name: "baby wins", ages: []internal.AgeGroup{internal.AgeKids, internal.AgeBaby}, want: internal.AgeBaby},
		{name: "teen over kids", ages: []internal.AgeGroup{internal.AgeKids, internal.AgeTeen, internal.AgeKids}, want: internal.AgeTeen},
		{name: "all kids", ages: []internal.AgeGroup{internal.AgeKids, internal.AgeKids}, want: internal.AgeKids},
		{name: "empty falls back", ages: nil, want: internal.AgeKids},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ProductAge(tc.ages, SizeHint{}); got != tc.want {
				t.Fatalf("got %s want %s", got, tc.want)
			}
		})
	}
}
