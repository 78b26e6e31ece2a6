package engine

// Context is one entry of the session stack.
type Context interface {
	// Label is the path segment shown in the prompt. Empty for the root.
	Label() string

	// Process handles one command line. It never panics on user input.
	Process(line string) Response
}

var (
	_ Context = (*DirectoryContext)(nil)
	_ Context = (*TopicContext)(nil)

	_ Controller = (*TopicController)(nil)
	_ Controller = (*DirectoryController)(nil)
)
