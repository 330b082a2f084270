package parser_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gofat32/shell/internal/parser"
)

func TestTokenizeSplitsOnWhitespace(t *testing.T) {
	tokens := parser.Tokenize("cd foo")
	require.Len(t, tokens, 2)
	assert.Equal(t, "cd", tokens[0].Text)
	assert.Equal(t, "foo", tokens[1].Text)
}

func TestTokenizeQuotedStringIsOneToken(t *testing.T) {
	tokens := parser.Tokenize(`write 0 "hello world"`)
	require.Len(t, tokens, 3)
	assert.Equal(t, "hello world", tokens[2].Text)
}

func TestTokenizeBackslashEscapeInsideQuotes(t *testing.T) {
	tokens := parser.Tokenize(`write 0 "a\"b"`)
	require.Len(t, tokens, 3)
	assert.Equal(t, `a"b`, tokens[2].Text)
}

func TestTokenizeRecognizesReservedTokens(t *testing.T) {
	tokens := parser.Tokenize("ls | grep foo")
	require.Len(t, tokens, 4)
	assert.Equal(t, parser.KindPipe, tokens[1].Kind)
}

func TestExpandEnvVar(t *testing.T) {
	os.Setenv("FAT32SH_TEST_VAR", "bar")
	defer os.Unsetenv("FAT32SH_TEST_VAR")

	tokens := parser.Tokenize("echo $FAT32SH_TEST_VAR")
	expanded := parser.Expand(tokens)
	assert.Equal(t, []string{"echo", "bar"}, expanded)
}

func TestExpandUnsetEnvVarIsEmptyString(t *testing.T) {
	os.Unsetenv("FAT32SH_TEST_VAR_UNSET")
	tokens := parser.Tokenize("echo $FAT32SH_TEST_VAR_UNSET")
	expanded := parser.Expand(tokens)
	assert.Equal(t, []string{"echo", ""}, expanded)
}

func TestExpandTildeHome(t *testing.T) {
	os.Setenv("HOME", "/home/tester")
	tokens := parser.Tokenize("cd ~")
	expanded := parser.Expand(tokens)
	assert.Equal(t, []string{"cd", "/home/tester"}, expanded)
}

func TestExpandTildeWithPath(t *testing.T) {
	os.Setenv("HOME", "/home/tester")
	tokens := parser.Tokenize("cd ~/docs")
	expanded := parser.Expand(tokens)
	assert.Equal(t, []string{"cd", "/home/tester/docs"}, expanded)
}

func TestInterpretSplitsOnPipe(t *testing.T) {
	parts := parser.Interpret([]string{"ls", "|", "grep", "foo"})
	require.Len(t, parts, 2)
	assert.Equal(t, "ls", parts[0].Program)
	assert.True(t, parts[0].Piped)
	assert.Equal(t, "grep", parts[1].Program)
	assert.Equal(t, []string{"foo"}, parts[1].Args)
}

func TestInterpretRedirOutExtractsFilename(t *testing.T) {
	parts := parser.Interpret([]string{"ls", ">", "out.txt"})
	require.Len(t, parts, 1)
	assert.Equal(t, "out.txt", parts[0].RedirOut)
	assert.Empty(t, parts[0].Args)
}

func TestInterpretMissingRedirTargetSetsParseError(t *testing.T) {
	parts := parser.Interpret([]string{"ls", ">"})
	require.Len(t, parts, 1)
	assert.NotEmpty(t, parts[0].ParseError)
}

func TestInterpretBackgroundSplitsPart(t *testing.T) {
	parts := parser.Interpret([]string{"ls", "&"})
	require.Len(t, parts, 1)
	assert.True(t, parts[0].Background)
}
