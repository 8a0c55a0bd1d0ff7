package cli

import (
	"path/filepath"

	"github.com/arthur-debert/resman/pkg/config"
	"github.com/arthur-debert/resman/pkg/errors"
	"github.com/arthur-debert/resman/pkg/filesystem"
	"github.com/arthur-debert/resman/pkg/manifest"
	"github.com/arthur-debert/resman/pkg/packages"
	"github.com/arthur-debert/resman/pkg/repository"
	"github.com/arthur-debert/resman/pkg/store"
	"github.com/arthur-debert/resman/pkg/types"
)

// session is a resolver opened on the project directory
type session struct {
	rootDir   string
	storePath string
	root      *types.RootPackage
	packages  *packages.Collection
	manager   *repository.Manager
}

// openSession loads the project's packages and builds a Manager over the
// configured store
func (o *globalOptions) openSession(managerOpts ...repository.Option) (*session, error) {
	fs := filesystem.NewOS()
	cfg := config.Get()

	rootDir, err := filepath.Abs(o.root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid project directory %s", o.root)
	}

	format := manifest.Format(cfg.Manifest.Format)
	root, pkgs, err := packages.Load(fs, rootDir, packages.Options{
		Filename: cfg.Manifest.Filename,
		Format:   format,
	})
	if err != nil {
		if errors.GetErrorCode(err) == errors.ErrUnknown {
			return nil, errors.Wrap(err, errors.ErrManifestLoad, MsgErrLoadPackages)
		}
		return nil, err
	}

	storePath := cfg.StorePath(rootDir)
	s, err := store.Open(cfg.Store.Kind, storePath, cfg.Store.Mode, fs)
	if err != nil {
		if errors.GetErrorCode(err) == errors.ErrUnknown {
			return nil, errors.Wrap(err, errors.ErrStore, MsgErrOpenStore)
		}
		return nil, err
	}
	if cfg.Store.Kind == store.KindMemory {
		storePath = MsgStoreMemoryNotes
	}

	opts := append([]repository.Option{repository.WithFS(fs)}, managerOpts...)
	manager, err := repository.NewManager(root, pkgs, s, manifest.NewStore(fs, format), opts...)
	if err != nil {
		return nil, err
	}

	return &session{
		rootDir:   rootDir,
		storePath: storePath,
		root:      root,
		packages:  pkgs,
		manager:   manager,
	}, nil
}
