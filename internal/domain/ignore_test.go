package domain

import (
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIgnoreDirective_All(t *testing.T) {
	for _, text := range []string{"//gorald:ignore", "//nolint", "// nolint // legacy", "//nolint:all", "/* gorald:ignore */"} {
		r, ok := parseIgnoreDirective(text)
		require.Truef(t, ok, "expected %q to be parsed", text)
		assert.Truef(t, r.all, "expected %q to ignore all rules", text)
	}
}

func TestParseIgnoreDirective_Names(t *testing.T) {
	r, ok := parseIgnoreDirective("//gorald:ignore Self-Assignment, bool-literal-compare ")
	require.True(t, ok)

	assert.False(t, r.all)
	assert.True(t, r.ignores("self-assignment"))
	assert.True(t, r.ignores("bool-literal-compare"))
	assert.False(t, r.ignores("deprecated-ioutil"))

	r, ok = parseIgnoreDirective("//nolint:deprecated-ioutil,errorf-without-format // migration pending")
	require.True(t, ok)
	assert.True(t, r.ignores("errorf-without-format"))
	assert.False(t, r.ignores("self-assignment"))
}

func TestParseIgnoreDirective_NotADirective(t *testing.T) {
	for _, text := range []string{"// plain comment", "//nolintish", "// gorald is nice"} {
		_, ok := parseIgnoreDirective(text)
		assert.Falsef(t, ok, "did not expect %q to be a directive", text)
	}
}

func TestBuildIgnoreIndex_FileFuncLineScopes(t *testing.T) {
	const src = "//gorald:ignore deprecated-ioutil\n" + // 1
		"package p\n\n" + // 2-3
		"//gorald:ignore\n" + // 4
		"func ignoredFunc(a bool) bool {\n" + // 5
		"\treturn a == true\n" + // 6
		"}\n\n" + // 7-8
		"func f(a bool) {\n" + // 9
		"\t//gorald:ignore bool-literal-compare\n" + // 10
		"\t_ = a == true\n" + // 11
		"\t_ = a == true //nolint:bool-literal-compare\n" + // 12
		"\t_ = a == true\n" + // 13
		"}\n" // 14

	content := []byte(src)
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "test.go", content, parser.ParseComments)
	require.NoError(t, err)

	idx := buildIgnoreIndex(file, fset, content)

	assert.True(t, idx.suppressed("deprecated-ioutil", 13), "file scope")
	assert.False(t, idx.suppressed("self-assignment", 13))

	assert.True(t, idx.suppressed("self-assignment", 6), "function scope")
	assert.False(t, idx.suppressed("self-assignment", 11))

	assert.True(t, idx.suppressed("bool-literal-compare", 11), "leading comment applies to next line")
	assert.True(t, idx.suppressed("bool-literal-compare", 12), "trailing comment applies to its line")
	assert.False(t, idx.suppressed("bool-literal-compare", 13))
	assert.False(t, idx.suppressed("bool-literal-compare", 10))
}
