package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "japanese punctuation",
			input: "朝は散歩した。昼は会議だった！夜は読書。",
			want:  []string{"朝は散歩した", "昼は会議だった", "夜は読書"},
		},
		{
			name:  "latin punctuation",
			input: "First sentence. Second one! Third?",
			want:  []string{"First sentence", "Second one", "Third"},
		},
		{
			name:  "no terminator",
			input: "終わらない文",
			want:  []string{"終わらない文"},
		},
		{
			name:  "empty",
			input: "",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.input))
		})
	}
}

func TestSimpleSummary(t *testing.T) {
	text := "一文目です。二文目です。三文目です。四文目です。"

	got := SimpleSummary(text, 3)
	assert.Equal(t, "一文目です。二文目です。三文目です。", got)

	// Deterministic: repeated calls agree.
	assert.Equal(t, got, SimpleSummary(text, 3))

	assert.Equal(t, "", SimpleSummary("", 3))

	short := SimpleSummary("短い。", 3)
	assert.Equal(t, "短い。", short)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))

	long := strings.Repeat("あ", 30)
	got := Truncate(long, 10)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len([]rune(got)), 10)

	// Breaks at the last space inside the window.
	spaced := Truncate("hello wonderful world", 15)
	assert.Equal(t, "hello...", spaced)
}

func TestTruncateNeverExceedsBound(t *testing.T) {
	for _, maxLen := range []int{1, 3, 4, 10, 200} {
		got := Truncate(strings.Repeat("x", 500), maxLen)
		assert.LessOrEqual(t, len([]rune(got)), maxLen, "maxLen=%d", maxLen)
	}
}

func TestExtractKeywords(t *testing.T) {
	text := "golang golang golang testing testing deploy"

	got := ExtractKeywords(text, 2)
	assert.Equal(t, []string{"golang", "testing"}, got)

	// Determinism: frequency ties break alphabetically.
	tied := ExtractKeywords("banana apple cherry", 3)
	assert.Equal(t, []string{"apple", "banana", "cherry"}, tied)

	// Stopwords and numeric-only tokens are removed.
	noisy := ExtractKeywords("the 12345 meeting of the meeting", 5)
	assert.Equal(t, []string{"meeting"}, noisy)

	assert.Equal(t, []string{}, ExtractKeywords("", 5))
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 7, EstimateTokens(strings.Repeat("あ", 10)))
}

func TestSplitText(t *testing.T) {
	t.Run("short text yields one chunk", func(t *testing.T) {
		chunks := SplitText("こんにちは", 100, 20)
		assert.Equal(t, []string{"こんにちは"}, chunks)
	})

	t.Run("blank text yields nothing", func(t *testing.T) {
		assert.Nil(t, SplitText("   ", 100, 20))
	})

	t.Run("long text is chunked with full coverage", func(t *testing.T) {
		var b strings.Builder
		for i := 0; i < 50; i++ {
			b.WriteString("これはテスト用の文章です。")
		}
		text := b.String()

		chunks := SplitText(text, 100, 20)
		assert.Greater(t, len(chunks), 1)
		for _, chunk := range chunks {
			assert.LessOrEqual(t, len([]rune(chunk)), 100)
			assert.NotEmpty(t, strings.TrimSpace(chunk))
		}
	})

	t.Run("terminates when overlap is large", func(t *testing.T) {
		text := strings.Repeat("x", 500)
		chunks := SplitText(text, 100, 99)
		assert.NotEmpty(t, chunks)
	})
}
