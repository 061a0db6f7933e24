package embedded

import (
	"io/fs"
	"testing"
	"testing/fstest"
)

func TestEmbeddedAccess(t *testing.T) {
	Init(fstest.MapFS{
		"data/waves.yaml": &fstest.MapFile{Data: []byte("breakDuration: 15\n")},
	})

	t.Run("读取 data/ 下的文件", func(t *testing.T) {
		data, err := ReadFile("./data/waves.yaml")
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if string(data) != "breakDuration: 15\n" {
			t.Errorf("Unexpected content: %q", data)
		}
	})

	t.Run("拒绝未知前缀", func(t *testing.T) {
		if _, err := ReadFile("assets/waves.yaml"); err == nil {
			t.Error("Expected error for non-data path")
		}
		if Exists("waves.yaml") {
			t.Error("Exists should be false for paths outside data/")
		}
	})

	t.Run("子文件系统", func(t *testing.T) {
		sub, err := Sub("data")
		if err != nil {
			t.Fatalf("Sub failed: %v", err)
		}
		if _, err := fs.Stat(sub, "waves.yaml"); err != nil {
			t.Errorf("waves.yaml should exist in sub FS: %v", err)
		}
	})
}
