package cli

import (
	"context"
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"
)

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	want := []string{"layout", "convert", "graph", "pick", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	c.SetLogLevel(log.DebugLevel)

	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("log level = %v, want %v", c.Logger.GetLevel(), log.DebugLevel)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback string
		want     []string
	}{
		{"empty uses fallback", "", "json", []string{"json"}},
		{"single", "svg", "json", []string{"svg"}},
		{"multiple", "json,svg,png", "json", []string{"json", "svg", "png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input, tt.fallback)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewCacheDisabled(t *testing.T) {
	c, err := newCache(true)
	if err != nil {
		t.Fatalf("newCache(true) error: %v", err)
	}
	defer c.Close()

	ctx := context.Background()

	// Null cache never stores anything
	if err := c.Set(ctx, "key", []byte("data"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if hit {
		t.Error("null cache should never hit")
	}
}
