package pdf

import (
	"fmt"
	"io"
	"os"

	"github.com/google/renameio/v2"
)

// writeFileAtomic streams write's output into a pending file beside outFile
// and atomically replaces outFile with it. On failure the pending file is
// removed and outFile is left untouched.
func writeFileAtomic(outFile string, write func(w io.Writer) error) (int64, error) {
	pending, err := renameio.NewPendingFile(outFile, renameio.WithStaticPermissions(DefaultOutputPermissions))
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file for %s: %w", outFile, err)
	}
	// no-op once the file has been moved into place
	defer pending.Cleanup()

	if err := write(pending); err != nil {
		return 0, err
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return 0, fmt.Errorf("failed to move output into place: %w", err)
	}

	info, err := os.Stat(outFile)
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", outFile, err)
	}
	return info.Size(), nil
}
