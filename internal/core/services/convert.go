package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driving"
	"github.com/loupe-labs/loupe-cli/internal/logger"
	"github.com/loupe-labs/loupe-cli/internal/normalisers/markdown"
)

// Ensure ConvertService implements the interface.
var _ driving.ConvertService = (*ConvertService)(nil)

// ConvertService converts files between text-shaped formats.
type ConvertService struct{}

// NewConvertService creates a new conversion service.
func NewConvertService() *ConvertService {
	return &ConvertService{}
}

// Convert reads the request's input file, converts it to the target
// format, and writes the output file.
func (s *ConvertService) Convert(ctx context.Context, req domain.ConvertRequest) (*domain.ConvertResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.InputPath == "" {
		return nil, fmt.Errorf("%w: input path is empty", domain.ErrInvalidInput)
	}
	if !req.OutputFormat.IsValid() {
		return nil, fmt.Errorf("%w: unsupported output format %q", domain.ErrInvalidInput, req.OutputFormat)
	}

	content, err := os.ReadFile(req.InputPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: input file %s", domain.ErrNotFound, req.InputPath)
		}
		return nil, fmt.Errorf("read input: %w", err)
	}

	inputFormat := strings.ToLower(strings.TrimPrefix(filepath.Ext(req.InputPath), "."))

	outputPath := req.OutputPath
	if outputPath == "" {
		outputPath = strings.TrimSuffix(req.InputPath, filepath.Ext(req.InputPath)) + "." + string(req.OutputFormat)
	}

	var output string
	switch {
	case inputFormat == "pdf":
		return nil, fmt.Errorf("%w: pdf input requires a pdf parser, none is available", domain.ErrUnsupportedType)

	case inputFormat == string(req.OutputFormat):
		output = string(content)

	case inputFormat == "txt" && req.OutputFormat == domain.ConvertCSV:
		output, err = linesToCSV(string(content))

	case inputFormat == "csv" && req.OutputFormat == domain.ConvertTxt:
		output, err = csvToText(string(content))

	case inputFormat == "csv" && req.OutputFormat == domain.ConvertMarkdown:
		output, err = csvToMarkdown(string(content))

	case inputFormat == "md" && req.OutputFormat == domain.ConvertTxt:
		output = markdown.StripMarkdown(string(content))

	default:
		return nil, fmt.Errorf("%w: conversion from %q to %q not supported",
			domain.ErrUnsupportedType, inputFormat, req.OutputFormat)
	}
	if err != nil {
		return nil, err
	}

	//nolint:gosec // G306: converted output is not sensitive.
	if err := os.WriteFile(outputPath, []byte(output), 0o644); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}

	logger.Debug("Convert: %s -> %s (%d bytes)", req.InputPath, outputPath, len(output))

	return &domain.ConvertResult{
		OutputPath: outputPath,
		Format:     req.OutputFormat,
		Bytes:      len(output),
	}, nil
}

// linesToCSV writes one record per non-empty line under a single
// "text" column.
func linesToCSV(text string) (string, error) {
	var buf strings.Builder
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"text"}); err != nil {
		return "", fmt.Errorf("write csv: %w", err)
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := writer.Write([]string{line}); err != nil {
			return "", fmt.Errorf("write csv: %w", err)
		}
	}

	writer.Flush()
	return buf.String(), writer.Error()
}

// csvToText flattens records to lines with columns padded to a shared
// width.
func csvToText(data string) (string, error) {
	records, err := readCSV(data)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", nil
	}

	widths := columnWidths(records)

	var b strings.Builder
	for _, record := range records {
		line := make([]string, len(record))
		for i, cell := range record {
			line[i] = pad(cell, widths[i])
		}
		b.WriteString(strings.TrimRight(strings.Join(line, "  "), " "))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// csvToMarkdown renders records as a markdown table. The first record
// is the header row.
func csvToMarkdown(data string) (string, error) {
	records, err := readCSV(data)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", nil
	}

	header := records[0]
	var b strings.Builder

	writeRow := func(cells []string) {
		b.WriteString("|")
		for i := range header {
			cell := ""
			if i < len(cells) {
				cell = strings.ReplaceAll(cells[i], "|", `\|`)
			}
			b.WriteString(" " + cell + " |")
		}
		b.WriteByte('\n')
	}

	writeRow(header)
	b.WriteString("|")
	for range header {
		b.WriteString(" --- |")
	}
	b.WriteByte('\n')
	for _, record := range records[1:] {
		writeRow(record)
	}

	return b.String(), nil
}

func readCSV(data string) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid csv: %v", domain.ErrInvalidInput, err)
	}
	return records, nil
}

func columnWidths(records [][]string) []int {
	var widths []int
	for _, record := range records {
		for i, cell := range record {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
