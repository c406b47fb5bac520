//go:build !headless

package main

import "testing"

func TestKeyInput_EbitenImplements(t *testing.T) {
	eo := &EbitenOutput{}
	if _, ok := any(eo).(KeyInput); !ok {
		t.Fatal("expected EbitenOutput to implement KeyInput")
	}
	var _ VideoOutput = eo
}
