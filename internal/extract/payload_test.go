package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFencedBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		want  string
		found bool
	}{
		{
			name:  "json fence",
			text:  "Here you go:\n```json\n{\"stocks\": []}\n```\nDone.",
			want:  `{"stocks": []}`,
			found: true,
		},
		{
			name:  "uppercase tag",
			text:  "```JSON\n{\"stocks\": [1]}\n```",
			want:  `{"stocks": [1]}`,
			found: true,
		},
		{
			name:  "untagged fence with object",
			text:  "```\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
			found: true,
		},
		{
			name: "untagged fence with prose is skipped",
			text: "```\nnot json\n```",
		},
		{
			name:  "skips python fence and takes later json fence",
			text:  "```python\nprint(1)\n```\n```json\n{\"stocks\": []}\n```",
			want:  `{"stocks": []}`,
			found: true,
		},
		{
			name: "empty json fence",
			text: "```json\n```",
		},
		{
			name: "no fence",
			text: `{"stocks": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := FencedBlock(tt.text)
			assert.Equal(t, tt.found, got.Found)
			assert.Equal(t, tt.want, got.Text)
		})
	}
}

func TestKeyedObject(t *testing.T) {
	t.Parallel()

	text := `Metadata {"model": "x", "result": {"stocks": [{"code": "600519"}]}} trailing`
	got := KeyedObject(text)
	assert.True(t, got.Found)
	assert.Equal(t, `{"stocks": [{"code": "600519"}]}`, got.Text)
}

func TestKeyedObject_IgnoresBracesInStrings(t *testing.T) {
	t.Parallel()

	text := `{"note": "use } carefully {", "stocks": []}`
	got := KeyedObject(text)
	assert.True(t, got.Found)
	assert.Equal(t, text, got.Text)
}

func TestKeyedObject_RequiresArray(t *testing.T) {
	t.Parallel()

	assert.False(t, KeyedObject(`{"stocks": "none"}`).Found)
	assert.False(t, KeyedObject(`{"items": []}`).Found)
	assert.False(t, KeyedObject("no braces at all").Found)
}

func TestOuterObject(t *testing.T) {
	t.Parallel()

	got := OuterObject(`prefix {"a": {"b": 1}} middle {"c": 2}`)
	assert.True(t, got.Found)
	assert.Equal(t, `{"a": {"b": 1}}`, got.Text)
}

func TestOuterObject_Unclosed(t *testing.T) {
	t.Parallel()

	got := OuterObject(`answer: {"stocks": [{"code": "600519"`)
	assert.True(t, got.Found)
	assert.Equal(t, `{"stocks": [{"code": "600519"`, got.Text)
}

func TestOuterObject_UnclosedKeepsTailPastLastBrace(t *testing.T) {
	t.Parallel()

	text := `here: {"stocks": [{"code": "600519"}, {"code": "300750", "name": "宁德`
	got := OuterObject(text)
	assert.True(t, got.Found)
	assert.Equal(t, `{"stocks": [{"code": "600519"}, {"code": "300750", "name": "宁德`, got.Text)
}

func TestOuterObject_NotFound(t *testing.T) {
	t.Parallel()

	assert.False(t, OuterObject("no structure here").Found)
	assert.False(t, OuterObject("").Found)
	assert.False(t, OuterObject("only a closing } brace").Found)
}

func TestLocate_TierOrder(t *testing.T) {
	t.Parallel()

	fenced := "{\"stocks\": [\"outside\"]}\n```json\n{\"stocks\": [\"inside\"]}\n```"
	assert.Equal(t, `{"stocks": ["inside"]}`, Locate(fenced).Text)

	keyed := `{"meta": 1} then {"stocks": ["keyed"]}`
	assert.Equal(t, `{"stocks": ["keyed"]}`, Locate(keyed).Text)

	outer := `{"meta": 1} then {"other": 2}`
	assert.Equal(t, `{"meta": 1}`, Locate(outer).Text)

	assert.False(t, Locate("nothing to see").Found)
}
