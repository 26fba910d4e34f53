package catalog

import (
	"database/sql"
	"errors"
	"testing"
)

func TestNew_OpenError(t *testing.T) {
	orig := openDB
	t.Cleanup(func() { openDB = orig })

	boom := errors.New("boom")
	openDB = func(string, string) (*sql.DB, error) { return nil, boom }

	_, err := New(Config{DataDir: t.TempDir()})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped open error", err)
	}
}
