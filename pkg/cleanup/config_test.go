package cleanup

import "testing"

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"light", LevelLight, false},
		{"standard", LevelStandard, false},
		{"aggressive", LevelAggressive, false},
		{"STANDARD", LevelStandard, false},
		{"  light  ", LevelLight, false},
		{"", LevelOff, true},
		{"extreme", LevelOff, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevelString_RoundTrips(t *testing.T) {
	for _, level := range []Level{LevelOff, LevelLight, LevelStandard, LevelAggressive} {
		parsed, err := ParseLevel(level.String())
		if err != nil {
			t.Fatalf("ParseLevel(%q) error = %v", level.String(), err)
		}
		if parsed != level {
			t.Errorf("round trip %v -> %q -> %v", level, level.String(), parsed)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != LevelStandard {
		t.Errorf("Level = %v, want %v", cfg.Level, LevelStandard)
	}
	if !cfg.PreserveIntentional {
		t.Error("PreserveIntentional should default to true")
	}
	if cfg.ChunkSize != DefaultChunkSize {
		t.Errorf("ChunkSize = %d, want %d", cfg.ChunkSize, DefaultChunkSize)
	}
	if cfg.Temperature != 0.1 {
		t.Errorf("Temperature = %f, want 0.1", cfg.Temperature)
	}
}
