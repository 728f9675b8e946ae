package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

func TestCompareDirs_UpToDate(t *testing.T) {
	fresh := t.TempDir()
	committed := t.TempDir()
	files := map[string]string{
		"protocol.py":  "# types\n",
		"initiator.py": "# initiator\n",
	}
	writeFiles(t, fresh, files)
	writeFiles(t, committed, files)

	stale, err := compareDirs(fresh, committed)
	require.NoError(t, err)
	assert.Empty(t, stale)
}

func TestCompareDirs_ContentDrift(t *testing.T) {
	fresh := t.TempDir()
	committed := t.TempDir()
	writeFiles(t, fresh, map[string]string{
		"protocol.py":  "# new types\n",
		"initiator.py": "# initiator\n",
	})
	writeFiles(t, committed, map[string]string{
		"protocol.py":  "# old types\n",
		"initiator.py": "# initiator\n",
	})

	stale, err := compareDirs(fresh, committed)
	require.NoError(t, err)
	assert.Equal(t, []string{"protocol.py"}, stale)
}

func TestCompareDirs_MissingCommittedFile(t *testing.T) {
	fresh := t.TempDir()
	committed := t.TempDir()
	writeFiles(t, fresh, map[string]string{"responder.py": "# responder\n"})

	stale, err := compareDirs(fresh, committed)
	require.NoError(t, err)
	assert.Equal(t, []string{"responder.py (missing)"}, stale)
}

func TestCompareDirs_StableOrder(t *testing.T) {
	fresh := t.TempDir()
	committed := t.TempDir()
	writeFiles(t, fresh, map[string]string{
		"a.py": "x",
		"b.py": "x",
		"c.py": "x",
	})
	writeFiles(t, committed, map[string]string{
		"a.py": "y",
		"b.py": "y",
		"c.py": "y",
	})

	stale, err := compareDirs(fresh, committed)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py", "b.py", "c.py"}, stale)
}
