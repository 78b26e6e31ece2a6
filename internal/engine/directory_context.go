package engine

import (
	"errors"
	"fmt"
	"strings"
)

const invalidTarget = `Valid type required. (expected "TOPIC" or "DIRECTORY")`

// DirectoryContext is a navigation scope bound to one directory. The root
// context has the empty path.
type DirectoryContext struct {
	env         *env
	path        string
	label       string
	controllers map[Target]Controller
}

func newDirectoryContext(e *env, path, label string) *DirectoryContext {
	return &DirectoryContext{
		env:         e,
		path:        path,
		label:       label,
		controllers: e.controllers(path),
	}
}

func (c *DirectoryContext) Label() string { return c.label }

// Path returns the backend path of the directory.
func (c *DirectoryContext) Path() string { return c.path }

// Process dispatches one navigation command.
func (c *DirectoryContext) Process(line string) Response {
	req, ok := parseRequest(line, true)
	if !ok {
		return Invalid{Message: "nothing to parse"}
	}

	switch req.command {
	case "EXIT":
		return Exit{}
	case "CLOSE":
		return CloseContext{}
	case "STATUS":
		return c.status()
	case "LIST":
		return c.list(req)
	case "CREATE", "DROP", "OPEN", "COMPACT":
		return c.resource(req)
	default:
		return Unknown{Command: req.command}
	}
}

func (c *DirectoryContext) status() Response {
	return Data{Rows: []Row{
		{Value: "database.home: " + c.env.home},
		{Value: "context: /" + c.path},
	}}
}

func (c *DirectoryContext) list(req request) Response {
	ctrl, ok := c.controllers[req.target]
	if !ok {
		return Invalid{Message: invalidTarget}
	}
	rows, err := ctrl.List()
	if err != nil {
		return Error{Message: err.Error()}
	}
	return Data{Rows: rows}
}

// resource handles the commands that take "<KIND> <id>".
func (c *DirectoryContext) resource(req request) Response {
	ctrl, ok := c.controllers[req.target]
	if !ok {
		return Invalid{Message: invalidTarget}
	}

	verb := req.command[:1] + strings.ToLower(req.command[1:])
	if req.tail == "" {
		return Invalid{Message: verb + " requires an id"}
	}
	id := text(req.tail)
	if err := validateName(id); err != nil {
		return Invalid{Message: fmt.Sprintf("%s: %v", verb, err)}
	}

	c.env.logger.Debug("dispatch",
		"command", req.command,
		"target", req.target.String(),
		"id", id,
		"dir", c.path,
	)

	switch req.command {
	case "CREATE":
		return message(ctrl.Create(id))
	case "DROP":
		return message(ctrl.Drop(id))
	case "OPEN":
		return ctrl.Open(id)
	default:
		return ctrl.Compact(id)
	}
}

// message converts a controller (message, error) pair into OK or Error.
func message(msg string, err error) Response {
	if err == nil {
		return OK{Message: msg}
	}
	var re *ResourceError
	if errors.As(err, &re) {
		return Error{Message: re.Error()}
	}
	return Error{Message: err.Error()}
}
