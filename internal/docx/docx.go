// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx reads the body paragraphs of a Word .docx document.
//
// A .docx file is a ZIP archive; the body lives in word/document.xml. Each
// top-level <w:p> under <w:body> becomes one types.Paragraph whose text is
// the concatenation of its <w:t> runs (tabs and breaks preserved) and whose
// HasMedia flag is set when the paragraph contains a <w:drawing> or
// <w:pict>. Paragraphs nested in tables or text boxes are not part of the
// body sequence and are skipped, as are paragraphs whose text is blank.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/qbank/pkg/types"
)

// ErrDocumentOpen marks a document that cannot be opened or decoded.
var ErrDocumentOpen = errors.New("document open")

const (
	documentPart = "word/document.xml"

	// DefaultMaxFileSize bounds the size of documents Reader accepts.
	DefaultMaxFileSize = 100 * 1024 * 1024
)

// Reader reads .docx files from disk.
type Reader struct {
	// MaxFileSize is the largest file accepted. Zero uses DefaultMaxFileSize.
	MaxFileSize int64
}

// Read returns the non-blank body paragraphs of the .docx file at path.
// Every failure wraps ErrDocumentOpen.
func (r Reader) Read(path string) ([]types.Paragraph, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".docx" {
		return nil, fmt.Errorf("%w: %s: unsupported format %q", ErrDocumentOpen, path, ext)
	}

	maxSize := r.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentOpen, err)
	}
	if info.Size() > maxSize {
		return nil, fmt.Errorf("%w: %s: file too large: %d bytes (max %d)", ErrDocumentOpen, path, info.Size(), maxSize)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDocumentOpen, path, err)
	}
	defer zr.Close()

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return nil, fmt.Errorf("%w: %s: %s not found in archive", ErrDocumentOpen, path, documentPart)
	}

	rc, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: opening %s: %v", ErrDocumentOpen, path, documentPart, err)
	}
	defer rc.Close()

	paragraphs, err := Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDocumentOpen, path, err)
	}
	return paragraphs, nil
}

// Parse decodes a WordprocessingML document part and returns its
// non-blank body paragraphs in document order.
func Parse(r io.Reader) ([]types.Paragraph, error) {
	decoder := xml.NewDecoder(r)

	var (
		paragraphs []types.Paragraph
		stack      []string
		text       strings.Builder
		inPara     bool
		paraDepth  int
		mediaDepth int
		inText     bool
		hasMedia   bool
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", documentPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			parent := ""
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}
			stack = append(stack, name)

			if !inPara {
				if name == "p" && parent == "body" {
					inPara = true
					paraDepth = len(stack)
					text.Reset()
					hasMedia = false
					mediaDepth = 0
				}
				continue
			}

			switch name {
			case "drawing", "pict":
				hasMedia = true
				mediaDepth++
			case "t":
				inText = mediaDepth == 0
			case "tab":
				if mediaDepth == 0 {
					text.WriteByte('\t')
				}
			case "br", "cr":
				if mediaDepth == 0 {
					text.WriteByte('\n')
				}
			}

		case xml.CharData:
			if inText {
				text.Write(t)
			}

		case xml.EndElement:
			depth := len(stack)
			if depth > 0 {
				stack = stack[:depth-1]
			}
			if !inPara {
				continue
			}

			switch t.Name.Local {
			case "t":
				inText = false
			case "drawing", "pict":
				mediaDepth--
			case "p":
				if depth != paraDepth {
					continue
				}
				inPara = false
				if s := strings.TrimSpace(text.String()); s != "" {
					paragraphs = append(paragraphs, types.Paragraph{Text: s, HasMedia: hasMedia})
				}
			}
		}
	}

	return paragraphs, nil
}
