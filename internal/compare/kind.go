// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compare

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/swcompare/pkg/types"
)

var kindByExtension = func() map[string]types.FileKind {
	m := make(map[string]types.FileKind, len(types.SolidWorksExtensions))
	for _, ext := range types.SolidWorksExtensions {
		m[ext] = types.KindSolidWorks
	}
	return m
}()

// KindOf resolves the comparison path for a file from its extension,
// case-insensitively. Anything that is not a SolidWorks extension is
// general.
func KindOf(path string) types.FileKind {
	if kind, ok := kindByExtension[strings.ToLower(filepath.Ext(path))]; ok {
		return kind
	}
	return types.KindGeneral
}

// Info stats path for display next to a comparison.
func Info(path string) (types.FileInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return types.FileInfo{Name: filepath.Base(path)}, fmt.Errorf("stat %s: %w", path, err)
	}
	return types.FileInfo{Name: filepath.Base(path), Size: st.Size(), ModTime: st.ModTime()}, nil
}
