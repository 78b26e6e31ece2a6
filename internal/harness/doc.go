// Package harness runs scripted topicdb sessions as conformance tests.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: notes_lifecycle
//	description: "Create a topic, edit it, compact it"
//	backend: sqlite            # or "os"; default sqlite (in-memory)
//	steps:
//	  - command: CREATE TOPIC notes
//	    expect:
//	      status: ok
//	      message: Topic notes created.
//	  - command: OPEN TOPIC notes
//	    expect: { status: open, prompt: /notes }
//	  - command: LIST
//	    expect:
//	      status: data
//	      rows:
//	        - { label: "00000000-0000-0000-0000-000000000001", value: buy milk }
//	assertions:
//	  - type: file_content
//	    path: notes.tpc
//	    lines:
//	      - "00000000-0000-0000-0000-000000000001Abuy milk"
//
// # Assertion Types
//
//   - file_content: the backend file at path holds exactly lines
//   - file_exists: the backend entry at path exists
//   - file_missing: the backend entry at path does not exist
//   - prompt: the session ends at prompt
//
// # Deterministic Testing
//
// Every scenario runs in a fresh backend with sequential record ids
// (record.SequenceGenerator) and a frozen clock (testutil.FixedTime), so
// transcripts are byte-identical across runs and can be compared against
// golden files in testdata/golden.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/notes.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
