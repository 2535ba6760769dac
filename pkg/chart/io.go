package chart

import (
	"encoding/json"
	"io"
	"os"

	apperrors "github.com/astroviz/starplot/pkg/errors"
)

// WriteFigure encodes a figure as indented JSON and writes it to w.
// The output can be re-imported with [ReadFigure] for round-trip rendering.
func WriteFigure(f *Figure, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode figure")
	}
	return nil
}

// ReadFigure decodes a figure from JSON.
func ReadFigure(r io.Reader) (*Figure, error) {
	var f Figure
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode figure")
	}
	return &f, nil
}

// ReadFigureFile reads a figure from a JSON file.
func ReadFigureFile(path string) (*Figure, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.New(apperrors.ErrCodeFileNotFound, "figure file not found: %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return ReadFigure(f)
}

// WriteFigureFile writes a figure to a JSON file.
func WriteFigureFile(fig *Figure, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteFigure(fig, f)
}

// ReadDocument decodes an input document. Both shapes are accepted: a full
// document with a "figures" list, or a single bare request object.
func ReadDocument(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err == nil && len(doc.Figures) > 0 {
		return &doc, nil
	}

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode datasets")
	}
	if len(req.Datasets) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "input contains no datasets")
	}
	return &Document{Figures: []Request{req}}, nil
}

// ReadDocumentFile reads an input document from a JSON file.
func ReadDocumentFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.New(apperrors.ErrCodeFileNotFound, "input file not found: %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return ReadDocument(f)
}
