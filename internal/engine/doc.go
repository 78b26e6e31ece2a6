// Package engine implements the session state machine of topicdb.
//
// A session is a stack of contexts. The bottom of the stack is always the
// root DirectoryContext; OPEN pushes a child context and CLOSE pops it.
//
// ARCHITECTURE:
//
// Request Flow:
//  1. Engine.Request hands the raw line to the context on top of the stack
//  2. The context tokenizes it and dispatches on the command keyword
//  3. Navigation commands are delegated to the Controller selected by the
//     KIND token (TOPIC or DIRECTORY); topic commands go to the bound store.Log
//  4. The context returns one Response from a closed set
//  5. Engine applies the stack effect (OpenContext pushes, CloseContext pops)
//
// Contexts:
//   - DirectoryContext: navigation scope bound to a directory path. Holds a
//     TOPIC and a DIRECTORY controller relative to that path.
//   - TopicContext: leaf scope bound to one replayed topic log.
//
// Controllers:
//   - TopicController and DirectoryController implement Controller. The
//     keyword -> controller table is fixed; there is no plugin registry.
//
// Contexts never hold a reference to their parent. Only the Engine owns the
// stack.
//
// Every request is handled to completion, including its storage I/O, before
// the next one is accepted. Malformed input never ends the session: it comes
// back as Invalid or Unknown.
package engine
