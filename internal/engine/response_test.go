package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponse_String(t *testing.T) {
	tests := []struct {
		resp       Response
		wantStatus Status
		wantText   string
	}{
		{OK{Message: "done"}, StatusOK, "done"},
		{Invalid{Message: "bad"}, StatusInvalid, "bad"},
		{Error{Message: "failed"}, StatusError, "failed"},
		{Data{}, StatusData, "(no rows)"},
		{Data{Rows: []Row{{Value: "a"}, {Label: "k", Value: "v"}}}, StatusData, "a\nk: v"},
		{OpenContext{Label: "notes"}, StatusOpen, "Opened notes"},
		{CloseContext{}, StatusClose, "Closed"},
		{Exit{}, StatusExit, "Bye"},
		{Unknown{Command: "FOO"}, StatusUnknown, `Unknown command "FOO"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.wantStatus, tt.resp.Status())
		assert.Equal(t, tt.wantText, tt.resp.String())
	}
}

func TestResourceError(t *testing.T) {
	cause := errors.New("disk on fire")
	tests := []struct {
		err  *ResourceError
		want string
	}{
		{&ResourceError{Code: CodeNotFound, Target: TargetTopic, ID: "a"}, "The topic a does not exist."},
		{&ResourceError{Code: CodeAlreadyExists, Target: TargetDirectory, ID: "b"}, "The directory b already exists."},
		{&ResourceError{Code: CodeNotEmpty, Target: TargetDirectory, ID: "c"}, "The directory c is not empty."},
		{ioFailure(TargetTopic, "d", cause), "Error occurred accessing topic d: disk on fire"},
	}
	for _, tt := range tests {
		assert.EqualError(t, tt.err, tt.want)
	}

	wrapped := errors.Join(errors.New("ctx"), &ResourceError{Code: CodeNotFound, Target: TargetTopic, ID: "x"})
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsAlreadyExists(wrapped))
	assert.ErrorIs(t, ioFailure(TargetTopic, "d", cause), cause)
}
