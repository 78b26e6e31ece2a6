package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/topicdb/internal/fsys"
)

// DirectoryController manages subdirectories of one directory.
type DirectoryController struct {
	env *env
	dir string
}

func (c *DirectoryController) Create(id string) (string, error) {
	path := fsys.Join(c.dir, id)
	if err := c.env.backend.Mkdir(path); err != nil {
		if errors.Is(err, fsys.ErrExist) {
			return "", &ResourceError{Code: CodeAlreadyExists, Target: TargetDirectory, ID: id, Err: err}
		}
		return "", ioFailure(TargetDirectory, id, err)
	}
	return fmt.Sprintf("Directory %s created.", id), nil
}

func (c *DirectoryController) List() ([]Row, error) {
	names, err := c.env.backend.ReadDir(c.dir, fsys.KindDir)
	if err != nil {
		return nil, fmt.Errorf("list directories in /%s: %w", c.dir, err)
	}
	return nameRows(names), nil
}

// Drop removes an empty directory.
func (c *DirectoryController) Drop(id string) (string, error) {
	path := fsys.Join(c.dir, id)
	ok, err := fsys.Exists(c.env.backend, path, fsys.KindDir)
	if err != nil {
		return "", ioFailure(TargetDirectory, id, err)
	}
	if !ok {
		return "", &ResourceError{Code: CodeNotFound, Target: TargetDirectory, ID: id}
	}

	if err := c.env.backend.Remove(path); err != nil {
		if errors.Is(err, fsys.ErrNotEmpty) {
			return "", &ResourceError{Code: CodeNotEmpty, Target: TargetDirectory, ID: id, Err: err}
		}
		return "", ioFailure(TargetDirectory, id, err)
	}
	return fmt.Sprintf("Directory %s dropped.", id), nil
}

// Open returns a DirectoryContext scoped to the subdirectory.
func (c *DirectoryController) Open(id string) Response {
	path := fsys.Join(c.dir, id)
	ok, err := fsys.Exists(c.env.backend, path, fsys.KindDir)
	if err != nil {
		return Error{Message: ioFailure(TargetDirectory, id, err).Error()}
	}
	if !ok {
		return Error{Message: fmt.Sprintf("%s does not exist.", id)}
	}
	return OpenContext{Context: newDirectoryContext(c.env, path, id), Label: id}
}

func (c *DirectoryController) Compact(string) Response {
	return Invalid{Message: "Compact is not applicable to directories"}
}
