// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/qbank/pkg/types"
)

func paras(texts ...string) []types.Paragraph {
	out := make([]types.Paragraph, len(texts))
	for i, s := range texts {
		out[i] = types.Paragraph{Text: s}
	}
	return out
}

func segment(ps []types.Paragraph) []Block {
	return Segment(NewLineClassifier(types.DefaultConfig()), ps)
}

func TestSegment_SingleQuestion(t *testing.T) {
	blocks := segment(paras("1.Question text", "A.foo", "B.bar", "【答案】A"))

	require.Len(t, blocks, 1)
	b := blocks[0]
	assert.Equal(t, []string{"1.Question text"}, b.TitleLines)
	assert.Equal(t, []string{"A.foo", "B.bar"}, b.OptionLines)
	assert.Equal(t, map[LineKind]string{AnswerTag: "A"}, b.Tags)
	assert.False(t, b.HasImage)
}

func TestSegment_PreambleDiscarded(t *testing.T) {
	blocks := segment(paras(
		"2024年高一信息技术作业",
		"A.stray option",
		"【答案】B",
		"1.first",
	))

	require.Len(t, blocks, 1)
	assert.Equal(t, []string{"1.first"}, blocks[0].TitleLines)
	assert.Empty(t, blocks[0].OptionLines)
	assert.Empty(t, blocks[0].Tags)
}

func TestSegment_TitleCollection(t *testing.T) {
	blocks := segment(paras(
		"1.下列关于算法的说法",
		"正确的是（ ）",
		"A.甲",
		"after options, ignored",
		"B.乙",
		"【答案】A",
	))

	require.Len(t, blocks, 1)
	assert.Equal(t, []string{"1.下列关于算法的说法", "正确的是（ ）"}, blocks[0].TitleLines)
	assert.Equal(t, []string{"A.甲", "B.乙"}, blocks[0].OptionLines)
}

func TestSegment_TagsKeepTitleCollectionOpen(t *testing.T) {
	blocks := segment(paras(
		"1.地球是圆的。",
		"【答案】对",
		"continuation line",
	))

	require.Len(t, blocks, 1)
	assert.Equal(t, []string{"1.地球是圆的。", "continuation line"}, blocks[0].TitleLines)
}

func TestSegment_TagOverwrites(t *testing.T) {
	blocks := segment(paras(
		"1.q",
		"【答案】A",
		"答案：",
		"【难度】0.5",
		"难度:0.9",
		"【知识点】k1",
		"【知识点】",
	))

	require.Len(t, blocks, 1)
	assert.Equal(t, map[LineKind]string{
		AnswerTag:     "A",
		DifficultyTag: "0.9",
		KnowledgeTag:  "",
	}, blocks[0].Tags)
}

func TestSegment_MediaFlag(t *testing.T) {
	tests := []struct {
		name  string
		input []types.Paragraph
		want  []bool
	}{
		{
			name:  "media on question start",
			input: []types.Paragraph{{Text: "1.如图", HasMedia: true}, {Text: "2.next"}},
			want:  []bool{true, false},
		},
		{
			name: "media on title continuation is sticky",
			input: []types.Paragraph{
				{Text: "1.题干"},
				{Text: "见下图", HasMedia: true},
				{Text: "more text"},
			},
			want: []bool{true},
		},
		{
			name: "media on option line is ignored",
			input: []types.Paragraph{
				{Text: "1.题干"},
				{Text: "A.图一", HasMedia: true},
			},
			want: []bool{false},
		},
		{
			name: "media after options is ignored",
			input: []types.Paragraph{
				{Text: "1.题干"},
				{Text: "A.x"},
				{Text: "图", HasMedia: true},
			},
			want: []bool{false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := segment(tt.input)
			require.Len(t, blocks, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, want, blocks[i].HasImage, "block %d", i)
			}
		})
	}
}

func TestSegment_BlankParagraphsSkipped(t *testing.T) {
	blocks := segment(paras("1.q", "   ", "", "second line"))

	require.Len(t, blocks, 1)
	assert.Equal(t, []string{"1.q", "second line"}, blocks[0].TitleLines)
}

func TestSegment_Empty(t *testing.T) {
	assert.Empty(t, segment(nil))
	assert.Empty(t, segment(paras("no questions here")))
}
