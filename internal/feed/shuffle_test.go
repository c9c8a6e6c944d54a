package feed

import (
	"testing"
)

func TestShuffle_Deterministic(t *testing.T) {
	input := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	first := Shuffle(input, 42)
	second := Shuffle(input, 42)

	if len(first) != len(second) {
		t.Fatalf("Expected equal lengths, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Position %d differs: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestShuffle_DifferentSeeds(t *testing.T) {
	input := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}

	first := Shuffle(input, 1)
	second := Shuffle(input, 2)

	same := true
	for i := range first {
		if first[i] != second[i] {
			same = false
			break
		}
	}
	if same {
		t.Errorf("Expected different permutations for different seeds")
	}
}

func TestShuffle_PreservesElements(t *testing.T) {
	input := []string{"a", "b", "c", "d", "e"}

	result := Shuffle(input, 7)

	if len(result) != len(input) {
		t.Fatalf("Expected %d elements, got %d", len(input), len(result))
	}
	seen := make(map[string]int)
	for _, v := range result {
		seen[v]++
	}
	for _, v := range input {
		if seen[v] != 1 {
			t.Errorf("Element %q appears %d times in shuffled output", v, seen[v])
		}
	}
}

func TestShuffle_InputUntouched(t *testing.T) {
	input := []string{"a", "b", "c", "d", "e", "f"}

	Shuffle(input, 99)

	expected := []string{"a", "b", "c", "d", "e", "f"}
	for i := range input {
		if input[i] != expected[i] {
			t.Errorf("Input slice was modified at position %d: %q", i, input[i])
		}
	}
}

func TestShuffle_ZeroSeedCoerced(t *testing.T) {
	input := []int{1, 2, 3, 4, 5}

	zero := Shuffle(input, 0)
	one := Shuffle(input, 1)

	for i := range zero {
		if zero[i] != one[i] {
			t.Errorf("Seed 0 should behave like seed 1, differ at position %d", i)
		}
	}
}

func TestShuffle_EmptyAndSingle(t *testing.T) {
	if result := Shuffle([]string{}, 5); len(result) != 0 {
		t.Errorf("Expected empty result, got %d elements", len(result))
	}
	if result := Shuffle([]string{"only"}, 5); len(result) != 1 || result[0] != "only" {
		t.Errorf("Expected single-element result unchanged, got %v", result)
	}
}
