package mapping

import (
	"os"
	"path"
	"path/filepath"

	"github.com/arthur-debert/resman/pkg/errors"
	"github.com/arthur-debert/resman/pkg/types"
)

// Entry is one filesystem entry a mapping expands to
type Entry struct {
	RepositoryPath string
	FilesystemPath string
	Kind           types.ResourceKind
}

// Resource returns the store descriptor for the entry
func (e Entry) Resource() types.Resource {
	return types.Resource{Kind: e.Kind, SourcePath: e.FilesystemPath}
}

// expand walks fsPath and returns one entry per file and directory, parents
// before their children and siblings by name
func expand(fsys types.FS, fsPath, repositoryPath string) ([]Entry, error) {
	info, err := fsys.Stat(fsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrResourceDefinition, "path %s does not exist", fsPath).
				WithDetail("path", fsPath).
				WithDetail("repositoryPath", repositoryPath)
		}
		return nil, errors.Wrapf(err, errors.ErrResourceDefinition, "cannot access %s", fsPath).
			WithDetail("path", fsPath)
	}

	if !info.IsDir() {
		return []Entry{{RepositoryPath: repositoryPath, FilesystemPath: fsPath, Kind: types.ResourceFile}}, nil
	}

	entries := []Entry{{RepositoryPath: repositoryPath, FilesystemPath: fsPath, Kind: types.ResourceDirectory}}
	children, err := fsys.ReadDir(fsPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrResourceDefinition, "cannot read directory %s", fsPath).
			WithDetail("path", fsPath)
	}
	for _, child := range children {
		nested, err := expand(fsys, filepath.Join(fsPath, child.Name()), path.Join(repositoryPath, child.Name()))
		if err != nil {
			return nil, err
		}
		entries = append(entries, nested...)
	}
	return entries, nil
}
