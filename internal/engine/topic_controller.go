package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/topicdb/internal/fsys"
)

// TopicController manages topic files "<id><ext>" in one directory.
type TopicController struct {
	env *env
	dir string
}

func (c *TopicController) file(id string) string {
	return fsys.Join(c.dir, id+c.env.ext)
}

// Create makes an empty topic file.
func (c *TopicController) Create(id string) (string, error) {
	path := c.file(id)
	if _, err := c.env.backend.Stat(path); err == nil {
		return "", &ResourceError{Code: CodeAlreadyExists, Target: TargetTopic, ID: id}
	} else if !errors.Is(err, fsys.ErrNotExist) {
		return "", ioFailure(TargetTopic, id, err)
	}

	if err := c.env.backend.Create(path); err != nil {
		if errors.Is(err, fsys.ErrExist) {
			return "", &ResourceError{Code: CodeAlreadyExists, Target: TargetTopic, ID: id, Err: err}
		}
		return "", ioFailure(TargetTopic, id, err)
	}

	c.env.logger.Info("topic created", "path", path)
	return fmt.Sprintf("Topic %s created.", id), nil
}

// List returns the topic ids in the directory. Files without the topic
// extension are skipped.
func (c *TopicController) List() ([]Row, error) {
	names, err := c.env.backend.ReadDir(c.dir, fsys.KindFile)
	if err != nil {
		return nil, fmt.Errorf("list topics in /%s: %w", c.dir, err)
	}

	var ids []string
	for _, name := range names {
		id, ok := strings.CutSuffix(name, c.env.ext)
		if ok && id != "" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return nameRows(ids), nil
}

// Drop removes the topic file. Backups left by compaction are kept.
func (c *TopicController) Drop(id string) (string, error) {
	path := c.file(id)
	ok, err := fsys.Exists(c.env.backend, path, fsys.KindFile)
	if err != nil {
		return "", ioFailure(TargetTopic, id, err)
	}
	if !ok {
		return "", &ResourceError{Code: CodeNotFound, Target: TargetTopic, ID: id}
	}

	if err := c.env.backend.Remove(path); err != nil {
		return "", ioFailure(TargetTopic, id, err)
	}

	c.env.logger.Info("topic dropped", "path", path)
	return fmt.Sprintf("Topic %s dropped.", id), nil
}

// Open replays the topic into a new TopicContext.
func (c *TopicController) Open(id string) Response {
	path := c.file(id)
	ok, err := fsys.Exists(c.env.backend, path, fsys.KindFile)
	if err != nil {
		return Error{Message: ioFailure(TargetTopic, id, err).Error()}
	}
	if !ok {
		return Error{Message: fmt.Sprintf("%s does not exist.", id)}
	}

	log, err := c.env.openLog(path)
	if err != nil {
		return Error{Message: fmt.Sprintf("Failed to open topic %s: %v", id, err)}
	}
	return OpenContext{Context: newTopicContext(c.env, id, log), Label: id}
}

// Compact replays the topic and compacts it in place.
func (c *TopicController) Compact(id string) Response {
	path := c.file(id)
	ok, err := fsys.Exists(c.env.backend, path, fsys.KindFile)
	if err != nil {
		return Error{Message: ioFailure(TargetTopic, id, err).Error()}
	}
	if !ok {
		return Error{Message: fmt.Sprintf("%s does not exist.", id)}
	}

	log, err := c.env.openLog(path)
	if err != nil {
		return Error{Message: fmt.Sprintf("Failed to open topic %s: %v", id, err)}
	}
	return compact(id, log)
}
