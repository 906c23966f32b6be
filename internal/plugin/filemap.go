package plugin

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/mgaudreault/deckhand/internal/logger"
)

// FileEntry maps one file of a component distribution to its install
// location. TargetPath defaults to the normalized SrcPath and Type defaults
// to "file".
type FileEntry struct {
	SrcPath    string `yaml:"src_path" validate:"required"`
	TargetPath string `yaml:"target_path"`
	Type       string `yaml:"type"`
}

// FileMapArtifact is a file-manifest plugin backed by file_map.yaml.
type FileMapArtifact struct {
	artifactInfo

	manifestPath string
	log          *logger.Logger

	parsed  bool
	entries []FileEntry
	index   map[string]int
}

func newFileMapArtifact(component, root string, version Version, log *logger.Logger) Artifact {
	kind, _, _ := LookupKind(KindFileMap)
	return &FileMapArtifact{
		artifactInfo: newArtifactInfo(component, kind, version, root),
		manifestPath: filepath.Join(root, FileMapManifest),
		log:          log,
	}
}

// NormalizeSrcPath rewrites a source path that is not already
// relative-dotted to start with "./". Normalization is idempotent.
func NormalizeSrcPath(p string) string {
	if strings.HasPrefix(p, ".") {
		return p
	}
	return "." + path.Join("/", p)
}

// Entries returns the file map in discovery order, parsing the manifest on
// first access. Entries are keyed by normalized source path; a duplicate
// source path overwrites the earlier entry while keeping its position. An
// unusable manifest yields an empty map after a logged warning.
func (a *FileMapArtifact) Entries() []FileEntry {
	if a.parsed {
		return a.entries
	}
	a.parsed = true
	a.index = make(map[string]int)

	var raw []FileEntry
	if err := decodeManifest(a.manifestPath, &raw); err != nil {
		warnManifest(a.log, a.String(), a.manifestPath, err)
		return a.entries
	}

	v := validatorInstance()
	for _, entry := range raw {
		if err := v.Struct(entry); err != nil {
			a.log.WithFields(map[string]any{
				"plugin":   a.String(),
				"manifest": a.manifestPath,
			}).Warnf("skipping file record without a src_path")
			continue
		}

		entry.SrcPath = NormalizeSrcPath(entry.SrcPath)
		if entry.TargetPath == "" {
			entry.TargetPath = entry.SrcPath
		}
		if entry.Type == "" {
			entry.Type = "file"
		}

		if i, seen := a.index[entry.SrcPath]; seen {
			a.entries[i] = entry
			continue
		}
		a.index[entry.SrcPath] = len(a.entries)
		a.entries = append(a.entries, entry)
	}
	return a.entries
}

// Entry returns the file entry for a normalized or raw source path.
func (a *FileMapArtifact) Entry(srcPath string) (FileEntry, bool) {
	a.Entries()
	i, ok := a.index[NormalizeSrcPath(srcPath)]
	if !ok {
		return FileEntry{}, false
	}
	return a.entries[i], true
}
