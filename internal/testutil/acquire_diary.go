package testutil

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/selfdiary/selfdiary/diary"
)

type (
	TestLog interface {
		Fatal(...interface{})
		Log(...interface{})
	}
)

// AcquireStore opens a throwaway diary store inside a temp dir and hands
// back a cleanup closing both.
func AcquireStore(ctx context.Context, t TestLog, name string) (*diary.Store, func()) {
	dir, err := ioutil.TempDir("", "selfdiary-tests")
	if err != nil {
		t.Fatal(err)
	}
	store, err := diary.Open(ctx, filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	return store, func() {
		err := store.Close()
		if err != nil {
			t.Log("unable to close diary store", err)
		}
		err = os.RemoveAll(dir)
		if err != nil {
			t.Log("unable to cleanup temp dir", dir)
		}
	}
}
