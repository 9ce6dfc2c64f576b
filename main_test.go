package main

import (
	"errors"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/jumplab/prefabs"
)

func TestRunGameClosesWatcher(t *testing.T) {
	tests := []struct {
		name    string
		runErr  error
		wantErr bool
	}{
		{name: "clean exit"},
		{name: "run fails", runErr: errors.New("no display"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := prefabs.NewWatcher(t.TempDir())
			if err != nil {
				t.Fatalf("NewWatcher: %v", err)
			}
			g := &Game{watcher: w}

			err = runGame(g, func(ebiten.Game) error { return tt.runErr })
			if (err != nil) != tt.wantErr || (tt.wantErr && !errors.Is(err, tt.runErr)) {
				t.Fatalf("runGame err = %v, want %v", err, tt.runErr)
			}

			select {
			case _, ok := <-w.Events:
				if ok {
					t.Fatalf("unexpected watcher event")
				}
			case <-time.After(time.Second):
				t.Fatalf("watcher still open after runGame returned")
			}
		})
	}
}
