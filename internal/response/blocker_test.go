package response

import "testing"

func TestBlock_Success(t *testing.T) {
	b := NewUFWBlocker([]string{"true"})
	if err := b.Block("1.2.3.4"); err != nil {
		t.Errorf("Expected success, got %v", err)
	}
}

func TestBlock_CommandFailure(t *testing.T) {
	b := NewUFWBlocker([]string{"false"})
	if err := b.Block("1.2.3.4"); err == nil {
		t.Error("Expected an error from a failing command")
	}
}

func TestNewUFWBlocker_Default(t *testing.T) {
	b := NewUFWBlocker(nil)
	if len(b.command) == 0 || b.command[len(b.command)-1] != "from" {
		t.Errorf("Unexpected default command: %v", b.command)
	}
}
