package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codelens/api/internal/completion"
	"github.com/codelens/api/internal/config"
	"github.com/codelens/api/internal/models"
)

func TestAnalyzeCmd_MetricsWithoutAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "add.py")
	require.NoError(t, os.WriteFile(path, []byte("def add(a, b):\n  return a + b"), 0o600))

	cmd := newAnalyzeCmd(config.New())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--type", string(models.RequestQualityMetrics), path})
	cmd.SetContext(context.Background())

	require.NoError(t, cmd.Execute())
	assert.Equal(t,
		"Number of Lines: 2\nNumber of AST Nodes: 11\nNumber of Functions: 1\nCyclomatic Complexity (Approximate): 2\n",
		out.String())
}

func TestAnalyzeCmd_ReadsStdinAndReportsParseFailure(t *testing.T) {
	cmd := newAnalyzeCmd(config.New())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("def broken(:\n"))
	cmd.SetArgs([]string{"--type", string(models.RequestQualityMetrics)})
	cmd.SetContext(context.Background())

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, string(models.FailureParse), err.Error())
	assert.True(t, strings.HasPrefix(out.String(), "Error in analyzing code quality: "))
}

func TestAnalyzeCmd_RejectsUnknownRequestType(t *testing.T) {
	cmd := newAnalyzeCmd(config.New())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("x = 1"))
	cmd.SetArgs([]string{"--type", "Translate"})
	cmd.SetContext(context.Background())

	err := cmd.Execute()
	assert.ErrorIs(t, err, models.ErrInvalidRequestType)
}

func TestAnalyzeCmd_GenerationNeedsAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("PALM_KEY", "")
	t.Setenv("Palm_Key", "")

	cmd := newAnalyzeCmd(config.New())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("x = 1"))
	cmd.SetArgs([]string{})
	cmd.SetContext(context.Background())

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing API key")
}

func TestListModels_MarksSelected(t *testing.T) {
	lister := staticLister{
		{Name: "models/embedding-001", SupportedActions: []string{"embedContent"}},
		{Name: "models/text-bison-001", SupportedActions: []string{"generateContent", "countTokens"}},
		{Name: "models/gemini-pro", SupportedActions: []string{"generateContent"}},
	}

	var out bytes.Buffer
	require.NoError(t, listModels(context.Background(), lister, &out))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "  models/embedding-001"))
	assert.True(t, strings.HasPrefix(lines[1], "* models/text-bison-001"))
	assert.True(t, strings.HasPrefix(lines[2], "  models/gemini-pro"))
	assert.True(t, strings.HasSuffix(lines[1], "generateContent"))
}

func TestListModels_NoGenerativeModel(t *testing.T) {
	lister := staticLister{{Name: "models/embedding-001", SupportedActions: []string{"embedContent"}}}
	err := listModels(context.Background(), lister, &bytes.Buffer{})
	assert.ErrorIs(t, err, completion.ErrNoGenerativeModel)
}
