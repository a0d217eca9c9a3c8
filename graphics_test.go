package main

import (
	"testing"

	eb "github.com/hajimehoshi/ebiten/v2"
)

func TestFilterStackRestores(t *testing.T) {
	base := CurrentFilter()

	BeginFilter(eb.FilterNearest)
	if CurrentFilter() != eb.FilterNearest {
		t.Fatalf("unexpected filter: got %v want %v", CurrentFilter(), eb.FilterNearest)
	}
	EndFilter()

	if CurrentFilter() != base {
		t.Fatalf("unexpected filter after EndFilter: got %v want %v", CurrentFilter(), base)
	}
}

func TestBlendStackRestores(t *testing.T) {
	base := CurrentBlend()

	BeginBlend(eb.BlendCopy)
	if CurrentBlend() != eb.BlendCopy {
		t.Fatal("expected BlendCopy on top of the stack")
	}
	EndBlend()

	if CurrentBlend() != base {
		t.Fatal("expected the base blend after EndBlend")
	}
}
