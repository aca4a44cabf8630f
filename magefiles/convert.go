//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// inputDocuments returns the .docx files under input/.
func inputDocuments() ([]string, error) {
	docs, err := filepath.Glob(filepath.Join("input", "*.docx"))
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no .docx documents in input/")
	}
	return docs, nil
}

// Convert converts every document in input/ into a spreadsheet in output/.
func Convert() error {
	mg.Deps(Init, Build)
	docs, err := inputDocuments()
	if err != nil {
		return err
	}
	args := append([]string{"convert", "--output-dir", "output"}, docs...)
	return sh.RunV(binPath, args...)
}

// Bank stores every document in input/ in the question bank and exports it
// as a grouped spreadsheet.
func Bank() error {
	mg.Deps(Init, Build)
	docs, err := inputDocuments()
	if err != nil {
		return err
	}
	if err := sh.RunV(binPath, append([]string{"bank", "store"}, docs...)...); err != nil {
		return err
	}
	return sh.RunV(binPath, "bank", "export", "--format", "excel")
}
