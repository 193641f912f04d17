package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-cmsfront/pkg/testsupport"
)

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, testsupport.SiteFixture(), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestPagesCommand(t *testing.T) {
	out, err := execute(t, "pages", "--source", writeFixture(t))
	require.NoError(t, err)

	for _, want := range []string{"PATH", "/en/", "/en/faq", "/en/contact", "/en/news/opening", "/fi/contact"} {
		assert.Contains(t, out, want)
	}
}

func TestPagesCommand_Locale(t *testing.T) {
	out, err := execute(t, "pages", "--source", writeFixture(t), "--locale", "fi")
	require.NoError(t, err)
	assert.Contains(t, out, "/fi/contact")
	assert.NotContains(t, out, "/en/")

	_, err = execute(t, "pages", "--source", writeFixture(t), "--locale", "xx")
	require.Error(t, err)
}

func TestBuildCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "build", "--source", writeFixture(t), "--out", dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Exported "), out)

	_, err = os.Stat(filepath.Join(dir, "en", "index.html"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "assets", "cmsfront.css"))
	require.NoError(t, err)
}

func TestInboxCommand(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "inbox.db")
	t.Setenv("CMSFRONT_CONTACT_INBOX_DSN", dsn)

	out, err := execute(t, "inbox")
	require.NoError(t, err)
	assert.Contains(t, out, "RECEIVED")
}

func TestMissingSource(t *testing.T) {
	_, err := execute(t, "pages", "--source", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
