package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/xhtml2md/core"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with fresh flag values.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	convertCmd.Flags().VisitAll(func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	})

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestConvertStdinToStdout(t *testing.T) {
	stdout, _, err := execute(t, `<h1>Hi</h1><ac:image ac:alt="pic"/>`, "convert", "--stdout")
	require.NoError(t, err)
	assert.Equal(t, "# Hi\n\npic\n", stdout)
}

func TestConvertJSONRequestFromStdin(t *testing.T) {
	body := `{"xhtml":"<ac:image><ri:attachment ri:filename=\"x.png\"/></ac:image>","base_url":"https://h/","page_id":1,"attachment_url_template":"/img/{page_id}/{filename}","prefer_absolute_urls":true}`

	stdout, _, err := execute(t, body, "convert", "--stdout")
	require.NoError(t, err)
	assert.Equal(t, "![x.png](https://h/img/1/x.png)\n", stdout)
}

func TestConvertFlagsOverrideRequest(t *testing.T) {
	body := `{"xhtml":"<ac:image><ri:attachment ri:filename=\"x.png\"/></ac:image>","page_id":"1","attachment_url_template":"/img/{page_id}/{filename}"}`

	stdout, _, err := execute(t, body, "convert", "--stdout", "--page_id", "99")
	require.NoError(t, err)
	assert.Equal(t, "![x.png](/img/99/x.png)\n", stdout)
}

func TestConvertOptionsFile(t *testing.T) {
	dir := t.TempDir()
	optsPath := filepath.Join(dir, "opts.yaml")
	writeFile(t, optsPath, "base_url: https://wiki.example.com\nprefer_absolute_urls: true\n")

	stdout, _, err := execute(t, `<ac:image><ri:attachment ri:filename="x.png"/></ac:image>`,
		"convert", "--stdout", "--options", optsPath)
	require.NoError(t, err)
	assert.Equal(t, "![x.png](https://wiki.example.com/img/x.png)\n", stdout)
}

func TestConvertMissingXHTML(t *testing.T) {
	_, _, err := execute(t, `{"page_id":"1"}`, "convert", "--stdout")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing 'xhtml'")
}

func TestConvertFileWritesMarkdown(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "release.xhtml")
	writeFile(t, src, `<p>Hello <strong>world</strong></p>`)
	out := filepath.Join(dir, "out")

	stdout, _, err := execute(t, "", "convert", src, "--output_dir", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ Written: "+filepath.Join(out, "release.md"))

	data, err := os.ReadFile(filepath.Join(out, "release.md"))
	require.NoError(t, err)
	assert.Equal(t, "Hello **world**\n", string(data))
}

func TestConvertDirectoryJSON(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "export")
	writeFile(t, filepath.Join(in, "a.xhtml"), `<h1>A</h1>`)
	writeFile(t, filepath.Join(in, "team", "b.xml"), `<h2>B</h2><p><a href="/x">x</a></p>`)
	writeFile(t, filepath.Join(in, "notes.txt"), `ignored`)
	out := filepath.Join(dir, "out")

	stdout, _, err := execute(t, "", "convert", in, "--json", "--output_dir", out, "--page_id", "42")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Found 2 documents")

	data, err := os.ReadFile(filepath.Join(out, "team", "b.json"))
	require.NoError(t, err)

	var page core.PageJSON
	require.NoError(t, json.Unmarshal(data, &page))
	assert.Equal(t, "42", page.Metadata.PageID)
	assert.Equal(t, "B", page.Metadata.Title)
	assert.Equal(t, []core.Link{{Text: "x", Href: "/x"}}, page.Structure.Links)
	assert.FileExists(t, filepath.Join(out, "a.json"))
	assert.NoFileExists(t, filepath.Join(out, "notes.json"))
}

func TestConvertDirectoryCountsFailures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ok.xhtml"), `<p>ok</p>`)
	writeFile(t, filepath.Join(dir, "empty.json"), `{}`)

	_, stderr, err := execute(t, "", "convert", dir, "--stdout")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 document(s) failed")
	assert.Contains(t, stderr, "1/2 documents failed")
}

func TestConvertRejectsMultipleFormats(t *testing.T) {
	_, _, err := execute(t, "<p>x</p>", "convert", "--json", "--pdf", "--stdout")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only one output format")
}

func TestCollectInputs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "z.xhtml"), "")
	writeFile(t, filepath.Join(dir, "sub", "a.XML"), "")
	writeFile(t, filepath.Join(dir, "skip.md"), "")

	files, err := collectInputs(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("sub", "a.XML"), "z.xhtml"}, files)
}
