package specification

import (
	"errors"
	"testing"
	"time"
)

func TestAlwaysNever(t *testing.T) {
	for _, c := range []*string{nil, ptr(""), ptr("x")} {
		if !Always[*string]().IsSatisfiedBy(c) {
			t.Errorf("Always().IsSatisfiedBy(%v) = false", c)
		}
		if Never[*string]().IsSatisfiedBy(c) {
			t.Errorf("Never().IsSatisfiedBy(%v) = true", c)
		}
	}
}

func TestNullValue(t *testing.T) {
	if !NullValue[*int]().IsSatisfiedBy(nil) {
		t.Error("NullValue().IsSatisfiedBy(nil) = false")
	}
	if NullValue[*int]().IsSatisfiedBy(new(int)) {
		t.Error("NullValue().IsSatisfiedBy(ptr) = true")
	}
	if NullValue[string]().IsSatisfiedBy("") {
		t.Error("a string is never absent")
	}
	if !NullValue[[]string]().IsSatisfiedBy(nil) {
		t.Error("NullValue().IsSatisfiedBy(nil slice) = false")
	}
	if NotNull[map[string]int]().IsSatisfiedBy(nil) {
		t.Error("NotNull().IsSatisfiedBy(nil map) = true")
	}
	if !NotNull[map[string]int]().IsSatisfiedBy(map[string]int{}) {
		t.Error("NotNull().IsSatisfiedBy(map) = false")
	}
}

func TestBlank(t *testing.T) {
	tests := []struct {
		name      string
		candidate []byte
		want      bool
	}{
		{"absent", nil, true},
		{"empty", []byte{}, true},
		{"spaces", []byte("  "), true},
		{"tabs and newlines", []byte("\t\n\r "), true},
		{"letter", []byte("a"), false},
		{"padded letter", []byte("  a  "), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Blank[[]byte]().IsSatisfiedBy(tt.candidate); got != tt.want {
				t.Errorf("Blank().IsSatisfiedBy(%q) = %v, want %v", tt.candidate, got, tt.want)
			}
			if got := NotBlank[[]byte]().IsSatisfiedBy(tt.candidate); got == tt.want {
				t.Errorf("NotBlank().IsSatisfiedBy(%q) = %v, want %v", tt.candidate, got, !tt.want)
			}
		})
	}

	if !Blank[string]().IsSatisfiedBy("\u2003") {
		t.Error("em space should be blank")
	}
	if Blank[[]rune]().IsSatisfiedBy([]rune("é")) {
		t.Error("rune text should not be blank")
	}
}

func TestEmpty(t *testing.T) {
	tests := []struct {
		name      string
		candidate any
		want      bool
	}{
		{"empty slice", []int{}, true},
		{"empty map", map[string]int{}, true},
		{"empty string", "", true},
		{"empty array", [0]int{}, true},
		{"slice", []int{1}, false},
		{"map", map[string]int{"a": 1}, false},
		{"string", "a", false},
		{"absent", nil, false},
		{"nil slice", []int(nil), false},
		{"number", 0, false},
		{"struct", struct{}{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Empty[any]().IsSatisfiedBy(tt.candidate); got != tt.want {
				t.Errorf("Empty().IsSatisfiedBy(%#v) = %v, want %v", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestFitInto(t *testing.T) {
	fit := FitInto[[]byte](5)
	if !fit.IsSatisfiedBy(nil) {
		t.Error("FitInto(5).IsSatisfiedBy(nil) = false")
	}
	if !fit.IsSatisfiedBy([]byte("12345")) {
		t.Error("FitInto(5).IsSatisfiedBy(12345) = false")
	}
	if fit.IsSatisfiedBy([]byte("123456")) {
		t.Error("FitInto(5).IsSatisfiedBy(123456) = true")
	}

	if !FitInto[string](4).IsSatisfiedBy("żółw") {
		t.Error("strings should be measured in runes")
	}
	if FitInto[[]byte](4).IsSatisfiedBy([]byte("żółw")) {
		t.Error("byte slices should be measured in bytes")
	}

	if !FitInto[string](1).IsSatisfiedBy("😀") {
		t.Error("a supplementary-plane character should count as one rune")
	}
	if FitInto[string](1).IsSatisfiedBy("a😀") {
		t.Error("FitInto(1) should reject two runes")
	}

	negative := FitInto[[]byte](-1)
	if negative.IsSatisfiedBy([]byte{}) {
		t.Error("FitInto(-1) should reject present text")
	}
	if !negative.IsSatisfiedBy(nil) {
		t.Error("FitInto(-1) should accept absent text")
	}
}

func TestMatches(t *testing.T) {
	digits, err := Matches[string]("[0-9]+")
	if err != nil {
		t.Fatalf("Matches() error: %v", err)
	}

	tests := []struct {
		candidate string
		want      bool
	}{
		{"123", true},
		{"12a", false},
		{"a12", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := digits.IsSatisfiedBy(tt.candidate); got != tt.want {
			t.Errorf("Matches([0-9]+).IsSatisfiedBy(%q) = %v, want %v", tt.candidate, got, tt.want)
		}
	}

	alternation := MustMatch[[]byte]("a|b")
	if alternation.IsSatisfiedBy([]byte("ab")) {
		t.Error("alternation should be anchored as a whole")
	}
	if alternation.IsSatisfiedBy(nil) {
		t.Error("absent text never matches")
	}
}

func TestMatches_InvalidPattern(t *testing.T) {
	_, err := Matches[string]("[0-9")
	if err == nil {
		t.Fatal("Matches() should fail for an unbalanced class")
	}
	if !errors.Is(err, ErrPattern) {
		t.Errorf("error should match ErrPattern, got %v", err)
	}

	var pe *PatternError
	if !errors.As(err, &pe) {
		t.Fatalf("error should be *PatternError, got %T", err)
	}
	if pe.Pattern != "[0-9" {
		t.Errorf("Pattern = %q, want %q", pe.Pattern, "[0-9")
	}

	defer func() {
		if recover() == nil {
			t.Error("MustMatch() should panic")
		}
	}()
	MustMatch[string]("(")
}

type money struct {
	cents    int64
	currency string
}

func (m money) Equal(other money) bool {
	return m.cents == other.cents
}

func TestIsEqual(t *testing.T) {
	if !IsEqual[*string](nil).IsSatisfiedBy(nil) {
		t.Error("IsEqual(nil).IsSatisfiedBy(nil) = false")
	}
	if IsEqual[*string](nil).IsSatisfiedBy(ptr("x")) {
		t.Error("IsEqual(nil).IsSatisfiedBy(x) = true")
	}
	if IsEqual(ptr("x")).IsSatisfiedBy(nil) {
		t.Error("IsEqual(x).IsSatisfiedBy(nil) = true")
	}
	if !IsEqual(ptr("x")).IsSatisfiedBy(ptr("x")) {
		t.Error("pointers should compare by value")
	}
	if !IsEqual([]int{1, 2}).IsSatisfiedBy([]int{1, 2}) {
		t.Error("slices should compare by value")
	}
	if !IsEqual(money{100, "EUR"}).IsSatisfiedBy(money{100, "USD"}) {
		t.Error("an Equal method should decide equality")
	}

	now := time.Now()
	if !IsEqual(now).IsSatisfiedBy(now.UTC()) {
		t.Error("time.Time should compare by instant")
	}
}

func TestAfterBefore(t *testing.T) {
	tests := []struct {
		name string
		spec Specification[int]
		c    int
		want bool
	}{
		{"after greater", After(2), 10, true},
		{"after equal", After(2), 2, false},
		{"after less", After(2), 1, false},
		{"before less", Before(8), 1, true},
		{"before equal", Before(8), 8, false},
		{"before greater", Before(8), 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.IsSatisfiedBy(tt.c); got != tt.want {
				t.Errorf("%v.IsSatisfiedBy(%d) = %v, want %v", tt.spec, tt.c, got, tt.want)
			}
		})
	}

	if !After("b").IsSatisfiedBy("c") {
		t.Error("strings should be ordered lexically")
	}
}

type version struct {
	major int
}

func (v *version) Compare(other *version) int {
	return v.major - other.major
}

func TestAfterBound(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	after, err := AfterBound(day)
	if err != nil {
		t.Fatalf("AfterBound() error: %v", err)
	}
	if !after.IsSatisfiedBy(day.Add(time.Second)) {
		t.Error("later instant should be after")
	}
	if after.IsSatisfiedBy(day) {
		t.Error("same instant is not after")
	}

	before, err := BeforeBound(&version{major: 3})
	if err != nil {
		t.Fatalf("BeforeBound() error: %v", err)
	}
	if !before.IsSatisfiedBy(&version{major: 2}) {
		t.Error("v2 should be before v3")
	}
	if before.IsSatisfiedBy(nil) {
		t.Error("absent candidates are not ordered")
	}

	if _, err := AfterBound[*version](nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("AfterBound(nil) error = %v, want ErrInvalidArgument", err)
	}
	if _, err := BeforeBound[*version](nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("BeforeBound(nil) error = %v, want ErrInvalidArgument", err)
	}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		candidate []byte
		want      bool
	}{
		{[]byte("alice@example.com"), true},
		{[]byte("alice.smith+tag@mail.example.org"), true},
		{[]byte("alice"), false},
		{[]byte("alice@"), false},
		{[]byte("@example.com"), false},
		{[]byte(""), false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := ValidEmail[[]byte]().IsSatisfiedBy(tt.candidate); got != tt.want {
			t.Errorf("ValidEmail().IsSatisfiedBy(%q) = %v, want %v", tt.candidate, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		spec any
		want string
	}{
		{Always[string](), "always"},
		{NotBlank[string](), "not(blank)"},
		{FitInto[string](5), "fitInto(5)"},
		{MustMatch[string]("[0-9]+"), `matches("[0-9]+")`},
		{After(2), "after(2)"},
		{And[*int](NotNull[*int](), IsEqual[*int](nil)), "and(not(null), isEqual(null))"},
	}

	for _, tt := range tests {
		if got := describe(tt.spec); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
