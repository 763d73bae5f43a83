// Package bulk converts directories of Kubernetes YAML manifests to JSON
// files, mirroring the input directory structure under the output root.
package bulk

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alevsk/k8s-converter/internal/converter"
	"github.com/alevsk/k8s-converter/internal/logger"
)

// Job describes a single directory conversion run
type Job struct {
	// InputDir is the directory containing YAML manifests
	InputDir string
	// OutputDir is the root directory for JSON output
	OutputDir string
	// Recursive enables descending into subdirectories
	Recursive bool
	// Pretty enables indented JSON output
	Pretty bool
}

// Entry records the outcome of converting one file
type Entry struct {
	// Path is the input file path
	Path string
	// OutputPath is the written JSON file, empty on failure
	OutputPath string
	// Err is the conversion failure, nil on success
	Err error
}

// Result aggregates the per-file outcomes of a Job
type Result struct {
	Entries    []Entry
	Successful int
	Failed     int
}

// Total returns the number of files attempted
func (r *Result) Total() int {
	return len(r.Entries)
}

// Run converts every YAML file found in job.InputDir. Files are processed
// independently: one file's failure never stops its siblings. The returned
// Result contains exactly one entry per attempted file, in sorted path
// order for deterministic output.
func Run(ctx context.Context, job Job) (*Result, error) {
	if err := os.MkdirAll(job.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	files, err := findYAMLFiles(ctx, job.InputDir, job.Recursive)
	if err != nil {
		return nil, err
	}

	result := &Result{Entries: make([]Entry, 0, len(files))}
	for _, path := range files {
		// Check for context cancellation between files
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		outputDir, err := outputDirFor(path, job)
		if err == nil {
			err = ProcessFile(path, outputDir, job.Pretty)
		}

		entry := Entry{Path: path}
		if err != nil {
			logger.Error().Err(err).Msgf("failed to convert %s", path)
			entry.Err = err
			result.Failed++
		} else {
			entry.OutputPath = filepath.Join(outputDir, jsonName(path))
			result.Successful++
		}
		result.Entries = append(result.Entries, entry)
	}

	return result, nil
}

// ProcessFile converts a single YAML manifest and writes the JSON result
// into outputDir with the same base name and a .json extension.
func ProcessFile(input, outputDir string, pretty bool) error {
	logger.Info().Msgf("processing %s", input)

	resource, err := converter.ConvertFile(input)
	if err != nil {
		return err
	}

	output := filepath.Join(outputDir, jsonName(input))
	if err := converter.WriteJSONFile(resource, output, pretty); err != nil {
		return err
	}

	logger.Info().Msgf("successfully converted %s to %s", input, output)
	return nil
}

// findYAMLFiles enumerates the .yaml/.yml files under dir. The extension
// match is case-sensitive. Results are sorted by path.
func findYAMLFiles(ctx context.Context, dir string, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	var files []string
	if recursive {
		err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if d.IsDir() {
				return nil
			}
			if hasYAMLExt(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk directory: %w", err)
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if hasYAMLExt(entry.Name()) {
				files = append(files, filepath.Join(dir, entry.Name()))
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// outputDirFor mirrors the input file's relative subdirectory under the
// job's output root, creating it on demand.
func outputDirFor(path string, job Job) (string, error) {
	rel, err := filepath.Rel(job.InputDir, filepath.Dir(path))
	if err != nil {
		return "", fmt.Errorf("failed to get relative path for %s: %w", path, err)
	}
	if rel == "." {
		return job.OutputDir, nil
	}
	outputDir := filepath.Join(job.OutputDir, rel)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}
	return outputDir, nil
}

func hasYAMLExt(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yaml" || ext == ".yml"
}

func jsonName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
}
