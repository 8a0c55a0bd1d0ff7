package types

// ResourceKind distinguishes directories from files in the repository
type ResourceKind string

const (
	ResourceDirectory ResourceKind = "directory"
	ResourceFile      ResourceKind = "file"
)

// Resource is the descriptor handed to a repository store: a directory or
// file backed by a filesystem source path
type Resource struct {
	Kind       ResourceKind
	SourcePath string
}

// IsDir reports whether the resource is a directory
func (r Resource) IsDir() bool {
	return r.Kind == ResourceDirectory
}

// NewDirectoryResource returns a directory resource for sourcePath
func NewDirectoryResource(sourcePath string) Resource {
	return Resource{Kind: ResourceDirectory, SourcePath: sourcePath}
}

// NewFileResource returns a file resource for sourcePath
func NewFileResource(sourcePath string) Resource {
	return Resource{Kind: ResourceFile, SourcePath: sourcePath}
}
