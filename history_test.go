package cubeplay

import (
	"errors"
	"testing"
)

func TestPopEmptyHistory(t *testing.T) {
	var h History
	_, err := h.Pop()
	if !errors.Is(err, ErrEmptyHistory) {
		t.Errorf("Pop on empty history = %v, want ErrEmptyHistory", err)
	}
	if _, err := h.Peek(); !errors.Is(err, ErrEmptyHistory) {
		t.Errorf("Peek on empty history = %v, want ErrEmptyHistory", err)
	}
}

func TestHistoryStackOrder(t *testing.T) {
	var h History
	h.Push(TopRowRight)
	h.Push(RightColumnDown)
	h.Push(RotateY)

	if h.Len() != 3 {
		t.Fatalf("Len = %d, want 3", h.Len())
	}

	want := []Move{RotateY, RightColumnDown, TopRowRight}
	for _, w := range want {
		got, err := h.Pop()
		if err != nil {
			t.Fatal(err)
		}
		if got != w {
			t.Errorf("Pop = %v, want %v", got, w)
		}
	}
	if h.Len() != 0 {
		t.Errorf("Len after draining = %d, want 0", h.Len())
	}
}

func TestHistoryMovesIsCopy(t *testing.T) {
	var h History
	h.Push(TopRowRight)

	moves := h.Moves()
	moves[0] = RotateX

	top, _ := h.Peek()
	if top != TopRowRight {
		t.Error("changing the returned slice should not change the history")
	}
}

func TestHistoryClearAndReplace(t *testing.T) {
	var h History
	h.Push(TopRowRight)
	h.Clear()
	if h.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", h.Len())
	}

	h.Replace([]Move{LeftColumnUp, RotateZ})
	if got := FormatMoves(h.Moves()); got != "C0 z" {
		t.Errorf("Moves after Replace = %q, want %q", got, "C0 z")
	}
}
