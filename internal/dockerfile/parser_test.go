package dockerfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse_BasicParsing(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{
			name:    "simple dockerfile",
			content: "FROM alpine:3.18\nRUN echo hello\n",
		},
		{
			name:    "multiline dockerfile",
			content: "FROM alpine:3.18\nRUN apk add --no-cache \\\n    curl \\\n    wget\nCMD [\"sh\"]\n",
		},
		{
			name:    "single line no newline",
			content: "FROM alpine:3.18",
		},
		{
			name:    "empty lines",
			content: "FROM alpine:3.18\n\n\nRUN echo hello\n",
		},
		{
			name:    "with comments",
			content: "# This is a comment\nFROM alpine:3.18\n# Another comment\nRUN echo hello\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Parse(strings.NewReader(tt.content))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}

			if result.AST == nil {
				t.Error("AST is nil")
			}
			if result.AST.AST == nil {
				t.Error("AST.AST is nil")
			}
		})
	}
}

func TestParse_LineCounts(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		wantTotal    int
		wantBlank    int
		wantComments int
	}{
		{
			name:         "no blanks or comments",
			content:      "FROM alpine:3.18\nRUN echo hello\n",
			wantTotal:    2,
			wantBlank:    0,
			wantComments: 0,
		},
		{
			name:         "blank lines",
			content:      "FROM alpine:3.18\n\n\nRUN echo hello\n",
			wantTotal:    4,
			wantBlank:    2,
			wantComments: 0,
		},
		{
			name:         "comment lines",
			content:      "# This is a comment\nFROM alpine:3.18\n# Another comment\nRUN echo hello\n",
			wantTotal:    4,
			wantBlank:    0,
			wantComments: 2,
		},
		{
			name:         "mixed",
			content:      "# header\n\nFROM alpine:3.18\n\nRUN echo hello\n# trailing\n",
			wantTotal:    6,
			wantBlank:    2,
			wantComments: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Parse(strings.NewReader(tt.content))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if result.TotalLines != tt.wantTotal {
				t.Errorf("TotalLines = %d, want %d", result.TotalLines, tt.wantTotal)
			}
			if result.BlankLines != tt.wantBlank {
				t.Errorf("BlankLines = %d, want %d", result.BlankLines, tt.wantBlank)
			}
			if result.CommentLines != tt.wantComments {
				t.Errorf("CommentLines = %d, want %d", result.CommentLines, tt.wantComments)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	content := "FROM alpine:3.18\nRUN echo hello\n"
	tmpDir := t.TempDir()
	dockerfilePath := filepath.Join(tmpDir, "Dockerfile")
	if err := os.WriteFile(dockerfilePath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := ParseFile(context.Background(), dockerfilePath)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if result.AST == nil {
		t.Error("AST is nil")
	}
	if result.TotalLines != 2 {
		t.Errorf("TotalLines = %d, want 2", result.TotalLines)
	}
}

func TestParseFile_Stdin(t *testing.T) {
	r, closer, err := openDockerfile("-")
	if err != nil {
		t.Fatalf("openDockerfile(-) error = %v", err)
	}
	defer closer()
	if r != os.Stdin {
		t.Error("openDockerfile(-) did not return os.Stdin")
	}
}

func TestCountLines(t *testing.T) {
	tmpDir := t.TempDir()
	dockerfilePath := filepath.Join(tmpDir, "Dockerfile")
	content := "FROM alpine:3.18\nRUN echo hello\nCMD [\"sh\"]\n"
	if err := os.WriteFile(dockerfilePath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	n, err := CountLines(dockerfilePath)
	if err != nil {
		t.Fatalf("CountLines() error = %v", err)
	}
	if n != 3 {
		t.Errorf("CountLines() = %d, want 3", n)
	}
}
