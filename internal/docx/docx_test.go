// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/qbank/pkg/types"
)

const (
	docHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"><w:body>`
	docFooter = `<w:sectPr/></w:body></w:document>`
)

func para(runs ...string) string {
	var b strings.Builder
	b.WriteString("<w:p><w:pPr><w:pStyle w:val=\"Normal\"/></w:pPr>")
	for _, r := range runs {
		b.WriteString(r)
	}
	b.WriteString("</w:p>")
	return b.String()
}

func run(text string) string {
	return `<w:r><w:t xml:space="preserve">` + text + `</w:t></w:r>`
}

const drawingRun = `<w:r><w:drawing><wp:inline><wp:docPr id="1" name="Picture 1"/></wp:inline></w:drawing></w:r>`

func document(paras ...string) string {
	return docHeader + strings.Join(paras, "") + docFooter
}

// writeDocx creates a minimal .docx archive holding body as word/document.xml.
func writeDocx(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0"?><Types/>`))
	require.NoError(t, err)
	w, err = zw.Create(documentPart)
	require.NoError(t, err)
	_, err = w.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return path
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []types.Paragraph
	}{
		{
			name: "runs are concatenated and trimmed",
			body: document(para(run("  1．下列"), run("说法正确的是（ ）  "))),
			want: []types.Paragraph{{Text: "1．下列说法正确的是（ ）"}},
		},
		{
			name: "blank paragraphs are skipped",
			body: document(para(run("   ")), para(), para(run("A.foo"))),
			want: []types.Paragraph{{Text: "A.foo"}},
		},
		{
			name: "drawing sets media flag",
			body: document(para(run("2.如图所示"), drawingRun), para(run("B.bar"))),
			want: []types.Paragraph{
				{Text: "2.如图所示", HasMedia: true},
				{Text: "B.bar"},
			},
		},
		{
			name: "pict sets media flag",
			body: document(para(run("图"), `<w:r><w:pict><v:shape xmlns:v="urn:schemas-microsoft-com:vml"/></w:pict></w:r>`)),
			want: []types.Paragraph{{Text: "图", HasMedia: true}},
		},
		{
			name: "image-only paragraph is blank",
			body: document(para(drawingRun), para(run("【答案】A"))),
			want: []types.Paragraph{{Text: "【答案】A"}},
		},
		{
			name: "tabs and breaks are preserved inside text",
			body: document(para(run("A.x"), `<w:r><w:tab/></w:r>`, run("B.y"), `<w:r><w:br/></w:r>`, run("C.z"))),
			want: []types.Paragraph{{Text: "A.x\tB.y\nC.z"}},
		},
		{
			name: "table paragraphs are not body paragraphs",
			body: document(
				para(run("1.题干")),
				`<w:tbl><w:tr><w:tc>`+para(run("cell text"))+`</w:tc></w:tr></w:tbl>`,
				para(run("【答案】B")),
			),
			want: []types.Paragraph{{Text: "1.题干"}, {Text: "【答案】B"}},
		},
		{
			name: "text box content is excluded from paragraph text",
			body: document(para(
				run("3.见文本框"),
				`<w:r><w:drawing><wps:txbx xmlns:wps="urn:wps"><w:txbxContent>`+para(run("inner"))+`</w:txbxContent></wps:txbx></w:drawing></w:r>`,
			)),
			want: []types.Paragraph{{Text: "3.见文本框", HasMedia: true}},
		},
		{
			name: "empty body",
			body: document(),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_MalformedXML(t *testing.T) {
	_, err := Parse(strings.NewReader(docHeader + "<w:p><w:r>"))
	require.Error(t, err)
}

func TestReader_Read(t *testing.T) {
	dir := t.TempDir()
	path := writeDocx(t, dir, "paper.docx", document(
		para(run("1.Question text")),
		para(run("A.foo")),
		para(run("B.bar")),
		para(run("【答案】A")),
	))

	got, err := Reader{}.Read(path)
	require.NoError(t, err)
	assert.Equal(t, []types.Paragraph{
		{Text: "1.Question text"},
		{Text: "A.foo"},
		{Text: "B.bar"},
		{Text: "【答案】A"},
	}, got)
}

func TestReader_ReadErrors(t *testing.T) {
	dir := t.TempDir()

	notZip := filepath.Join(dir, "broken.docx")
	require.NoError(t, os.WriteFile(notZip, []byte("not a zip"), 0o644))

	noPart := filepath.Join(dir, "empty.docx")
	f, err := os.Create(noPart)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	_, err = zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	big := writeDocx(t, dir, "big.docx", document(para(run("1.x"))))

	tests := []struct {
		name    string
		reader  Reader
		path    string
		wantMsg string
	}{
		{name: "missing file", path: filepath.Join(dir, "absent.docx"), wantMsg: "absent.docx"},
		{name: "unsupported extension", path: filepath.Join(dir, "paper.doc"), wantMsg: "unsupported format"},
		{name: "not a zip archive", path: notZip, wantMsg: "broken.docx"},
		{name: "missing document part", path: noPart, wantMsg: "not found in archive"},
		{name: "file too large", reader: Reader{MaxFileSize: 10}, path: big, wantMsg: "file too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.reader.Read(tt.path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDocumentOpen), "error %v should wrap ErrDocumentOpen", err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
