package cmd

import (
	"testing"

	"github.com/richardwooding/feedly-mcp/model"
)

func TestRunCmd_Run_InvalidTransport(t *testing.T) {
	cmd := &RunCmd{
		Transport:   "invalid",
		AccessToken: "test-token",
	}
	err := cmd.Run(&model.Globals{})
	if err == nil {
		t.Fatal("expected error for invalid transport")
	}
	if !model.IsErrorType(err, model.ErrorTypeTransport) {
		t.Errorf("expected a transport error, got %v", err)
	}
}

func TestRunCmd_Run_MissingAccessToken(t *testing.T) {
	cmd := &RunCmd{
		Transport: "stdio",
	}
	err := cmd.Run(&model.Globals{})
	if err == nil {
		t.Fatal("expected error when no access token is configured")
	}
	if !model.IsErrorType(err, model.ErrorTypeConfiguration) {
		t.Errorf("expected a configuration error, got %v", err)
	}
}
