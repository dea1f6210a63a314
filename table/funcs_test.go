package table

import (
	"fmt"
	"strconv"
	"testing"
)

func TestMap(t *testing.T) {
	got := Map([]int{1, 2, 3}, func(n int) string { return strconv.Itoa(n * 2) })
	want := []string{"2", "4", "6"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Map[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTryMap(t *testing.T) {
	got, err := TryMap([]string{"1", "2"}, strconv.Atoi)
	if err != nil {
		t.Fatalf("TryMap: %v", err)
	}
	if got[0] != 1 || got[1] != 2 {
		t.Errorf("TryMap = %v, want [1 2]", got)
	}

	if _, err := TryMap([]string{"1", "x"}, strconv.Atoi); err == nil {
		t.Error("expected error for bad element, got nil")
	}
}

func TestFilter(t *testing.T) {
	got := Filter([]int{1, 2, 3, 4}, func(n int) bool { return n%2 == 0 })
	if len(got) != 2 || got[0] != 2 || got[1] != 4 {
		t.Errorf("Filter = %v, want [2 4]", got)
	}
}

func TestReduce(t *testing.T) {
	got := Reduce([]int{1, 2, 3, 4}, 0, func(acc, n int) int { return acc + n })
	if got != 10 {
		t.Errorf("Reduce = %d, want 10", got)
	}
}

func TestTryReduce(t *testing.T) {
	got, err := TryReduce([]int{1, 2, 3}, 1, func(acc, n int) (int, error) {
		return acc * n, nil
	})
	if err != nil {
		t.Fatalf("TryReduce: %v", err)
	}
	if got != 6 {
		t.Errorf("TryReduce = %d, want 6", got)
	}

	_, err = TryReduce([]int{1, 0, 3}, 1, func(acc, n int) (int, error) {
		if n == 0 {
			return 0, fmt.Errorf("zero element")
		}
		return acc * n, nil
	})
	if err == nil {
		t.Error("expected error, got nil")
	}
}
