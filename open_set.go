package main

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Source is one .osu payload: a file on disk or an entry of an .osz archive.
type Source struct {
	Path  string
	Entry string // empty for plain .osu files
	Data  []byte
}

func (s Source) Name() string {
	if s.Entry == "" {
		return s.Path
	}
	return s.Path + "!" + s.Entry
}

func isBeatmapFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".osu")
}

func isArchive(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".osz")
}

// CollectPaths expands directories into the .osu and .osz files they hold.
// Plain file arguments are kept whatever their extension.
func CollectPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		if err := filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if isBeatmapFile(d.Name()) || isArchive(d.Name()) {
				paths = append(paths, path)
			}
			return nil
		}); err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// LoadSources reads path, opening .osz archives and returning every .osu inside.
func LoadSources(path string, log zerolog.Logger) ([]Source, error) {
	if isArchive(path) {
		return OpenArchive(path, log)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return []Source{{Path: path, Data: data}}, nil
}

// OpenArchive treats the .osz as a zip and reads its top-level .osu entries.
func OpenArchive(path string, log zerolog.Logger) ([]Source, error) {
	zipReader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("error opening osz (zip) %s: %w", path, err)
	}
	defer zipReader.Close()

	var sources []Source
	for _, file := range zipReader.File {
		if !isBeatmapFile(file.Name) {
			continue
		}
		if file.FileInfo().IsDir() || strings.ContainsAny(file.Name, `/\`) {
			log.Warn().Str("archive", path).Str("entry", file.Name).Msg("skipping nested .osu entry")
			continue
		}
		data, err := readEntry(file)
		if err != nil {
			return nil, fmt.Errorf("error reading .osu file %s: %w", file.Name, err)
		}
		sources = append(sources, Source{Path: path, Entry: file.Name, Data: data})
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no .osu files found in %s", path)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Entry < sources[j].Entry })
	return sources, nil
}

func readEntry(file *zip.File) ([]byte, error) {
	fileReader, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer fileReader.Close()
	return io.ReadAll(fileReader)
}
