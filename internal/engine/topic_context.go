package engine

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/roach88/topicdb/internal/record"
	"github.com/roach88/topicdb/internal/store"
)

// TopicContext is the leaf scope bound to one replayed topic log.
type TopicContext struct {
	env  *env
	name string
	log  *store.Log
}

func newTopicContext(e *env, name string, log *store.Log) *TopicContext {
	return &TopicContext{env: e, name: name, log: log}
}

func (c *TopicContext) Label() string { return c.name }

// Log returns the bound record log.
func (c *TopicContext) Log() *store.Log { return c.log }

// Process dispatches one record command.
func (c *TopicContext) Process(line string) Response {
	req, ok := parseRequest(line, false)
	if !ok {
		return Invalid{Message: "nothing to parse"}
	}

	switch req.command {
	case "ADD":
		return c.add(req.tail)
	case "UPDATE":
		return c.update(req.tail)
	case "DELETE":
		return c.delete(req.tail)
	case "LIST":
		return c.list()
	case "REFRESH":
		return c.refresh()
	case "COMPACT":
		return compact(c.name, c.log)
	case "STATUS":
		return c.status()
	case "CLOSE":
		return CloseContext{}
	case "EXIT":
		return Exit{}
	default:
		return Unknown{Command: req.command}
	}
}

func (c *TopicContext) add(tail string) Response {
	content := text(tail)
	if content == "" {
		return Invalid{Message: "Add requires content"}
	}

	id, err := c.log.Add(content)
	if errors.Is(err, record.ErrInvalidContent) {
		return Invalid{Message: "Content must be a single line"}
	}
	if err != nil {
		return Error{Message: fmt.Sprintf("Failed to add record: %v", err)}
	}
	return OK{Message: fmt.Sprintf("Record %s added.", id)}
}

func (c *TopicContext) update(tail string) Response {
	token, remainder := cut(tail)
	id := unquote(token)
	content := text(remainder)
	if id == "" || content == "" {
		return Invalid{Message: "Update requires an id and content"}
	}

	err := c.log.Update(id, content)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return Error{Message: fmt.Sprintf("No record found with id %s", id)}
	case errors.Is(err, record.ErrInvalidContent):
		return Invalid{Message: "Content must be a single line"}
	case err != nil:
		return Error{Message: fmt.Sprintf("Failed to update record %s: %v", id, err)}
	}
	return OK{Message: fmt.Sprintf("Record %s updated.", id)}
}

func (c *TopicContext) delete(tail string) Response {
	id := text(tail)
	if id == "" {
		return Invalid{Message: "Delete requires an id"}
	}

	err := c.log.Delete(id)
	if errors.Is(err, store.ErrNotFound) {
		return Error{Message: fmt.Sprintf("No record found with id %s", id)}
	}
	if err != nil {
		return Error{Message: fmt.Sprintf("Failed to delete record %s: %v", id, err)}
	}
	return OK{Message: fmt.Sprintf("Record %s deleted.", id)}
}

func (c *TopicContext) list() Response {
	entries := c.log.List()
	rows := make([]Row, len(entries))
	for i, e := range entries {
		rows[i] = Row{Label: e.ID, Value: e.Content}
	}
	return Data{Rows: rows}
}

func (c *TopicContext) refresh() Response {
	if err := c.log.Refresh(); err != nil {
		return Error{Message: fmt.Sprintf("Failed to refresh topic %s: %v", c.name, err)}
	}
	return OK{Message: fmt.Sprintf("Topic %s refreshed (%d records).", c.name, len(c.log.List()))}
}

func (c *TopicContext) status() Response {
	st := c.log.Stats()
	return Data{Rows: []Row{
		{Label: "topic", Value: c.name},
		{Label: "path", Value: "/" + c.log.Path()},
		{Label: "records", Value: strconv.Itoa(st.Records)},
		{Label: "lines", Value: strconv.Itoa(st.Lines)},
		{Label: "tombstones", Value: strconv.Itoa(st.Tombstones)},
	}}
}

// compact is shared by COMPACT TOPIC <id> and COMPACT inside a topic.
func compact(name string, log *store.Log) Response {
	res, err := log.Compact()
	if err != nil {
		return Error{Message: fmt.Sprintf("Failed to compact topic %s: %v", name, err)}
	}
	return OK{Message: fmt.Sprintf("Topic %s compacted: %d -> %d lines, backup %s.",
		name, res.LinesBefore, res.LinesAfter, res.Backup)}
}
