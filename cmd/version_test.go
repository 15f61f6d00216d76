package cmd

import (
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		checkOutput func(string) bool
	}{
		{
			name: "version command shows version info",
			args: []string{"version"},
			checkOutput: func(output string) bool {
				return strings.Contains(output, "Repo Radar API") &&
					strings.Contains(output, "Version:      v"+Version) &&
					strings.Contains(output, "Git Commit:   "+GitCommit)
			},
		},
		{
			name: "version command with --short flag",
			args: []string{"version", "--short"},
			checkOutput: func(output string) bool {
				return output == "v"+Version+"\n"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := execute(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Errorf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.checkOutput != nil && !tt.checkOutput(output) {
				t.Errorf("Output check failed: %q", output)
			}
		})
	}

	// reset for other tests sharing the root command
	_ = versionCmd.Flags().Set("short", "false")
}

func TestVersionCommandFlags(t *testing.T) {
	versionCmd, _, err := NewRootCmd().Find([]string{"version"})
	if err != nil {
		t.Fatalf("Failed to find version command: %v", err)
	}

	if versionCmd.Flags().Lookup("short") == nil {
		t.Error("Expected short flag to be registered")
	}
}

func TestBuildInfo(t *testing.T) {
	info := buildInfo()
	if info.Version != Version || info.GitCommit != GitCommit || info.BuildTime != BuildTime {
		t.Errorf("unexpected build info: %+v", info)
	}
}
