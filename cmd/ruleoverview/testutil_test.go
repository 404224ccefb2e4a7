package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rico-chet/languagetool/internal/config"
)

// testCatalog lists German and French plus the demo language.
const testCatalog = `product: LanguageTool
version: "9.9"
detection:
  supported: [de]
languages:
  - code: de
    name: German
    maintainers:
      - name: Daniel Naber
        url: http://www.danielnaber.de
  - code: fr
    name: French
  - code: xx
    name: Testlanguage
    demo: true
`

// testGrammar holds three rules once comments and the root tag are stripped.
const testGrammar = `<!-- <rule id="commented"> -->
<rules lang="de">
  <rule id="A"></rule>
  <rulegroup id="G">
    <rule></rule>
    <rule id="B"></rule>
  </rulegroup>
</rules>
`

const testFalseFriends = `<rules>
  <rulegroup><rule><pattern lang="de">Gift</pattern><pattern lang="fr">cadeau</pattern></rule></rulegroup>
  <rulegroup><rule><pattern lang="de">Rat</pattern></rule></rulegroup>
</rules>
`

// writeFile writes content to root/name, creating directories.
func writeFile(t *testing.T, root, name, content string) {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

// testEnv is a temporary source tree with catalog and config files.
type testEnv struct {
	root       string
	catalog    string
	configFile string
	dbDir      string
}

// setupTestEnv writes a small LanguageTool tree. With javaRules false the
// Java rule directories are left out.
func setupTestEnv(t *testing.T, javaRules bool) *testEnv {
	t.Helper()

	// Keep the caller's environment out of the configuration.
	for _, key := range []string{config.EnvRoot, config.EnvCatalog, config.EnvVersion} {
		t.Setenv(key, "")
	}

	dir := t.TempDir()
	env := &testEnv{
		root:       filepath.Join(dir, "languagetool"),
		catalog:    filepath.Join(dir, "languages.yaml"),
		configFile: filepath.Join(dir, "config.yaml"),
		dbDir:      filepath.Join(dir, "db"),
	}

	writeFile(t, dir, "languages.yaml", testCatalog)
	writeFile(t, dir, "config.yaml", "format: html\n")

	writeFile(t, env.root, "src/rules/de/grammar.xml", testGrammar)
	writeFile(t, env.root, "src/rules/false-friends.xml", testFalseFriends)
	writeFile(t, env.root, "website/www/de/index.html", "<html></html>")
	if javaRules {
		writeFile(t, env.root, "src/java/org/languagetool/rules/de/GermanRule.java", "class GermanRule {}")
		writeFile(t, env.root, "src/java/org/languagetool/rules/de/CaseRule.java", "class CaseRule {}")
		writeFile(t, env.root, "src/java/org/languagetool/rules/de/README.txt", "not a rule")
	}

	return env
}

// args returns the flags pointing the root command at the test tree.
func (e *testEnv) args(extra ...string) []string {
	return append([]string{
		"--root", e.root,
		"--catalog", e.catalog,
		"--config", e.configFile,
		"--db-dir", e.dbDir,
	}, extra...)
}

// execute runs the root command and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	stdout, _, err := executeWithStderr(t, args...)
	return stdout, err
}

// executeWithStderr runs the root command and returns stdout and stderr.
func executeWithStderr(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
