package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/chehxing/docx-to-excel/internal/common"
)

// save renders the workbook in memory, writes it to a temp file next to path
// and renames it into place. On failure nothing is left at path and a prior
// file there is untouched.
func save(f *excelize.File, path string) (int, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return 0, common.PersistenceError(path, fmt.Errorf("xlsx write: %w", err))
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, common.PersistenceError(path, err)
	}
	tmpName := tmp.Name()
	cleanup := func(cause error) (int, error) {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return 0, common.PersistenceError(path, cause)
	}

	n, err := tmp.Write(buf.Bytes())
	if err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		return cleanup(err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return 0, common.PersistenceError(path, err)
	}
	return n, nil
}
