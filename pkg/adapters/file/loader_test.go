package file_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/tracetm/internal/testutils"
	"github.com/aretw0/tracetm/pkg/adapters/file"
	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/aretw0/tracetm/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const unaryYAML = `
name: unary_scan
states: [q0, q1, q2, qA, qR]
input_alphabet: [1]
tape_alphabet: [1, _]
start: q0
accept: qA
reject: qR
transitions:
  - {from: q0, read: 1, next: q0, write: 1, move: R}
  - [q0, _, qA, _, r]
`

const unaryJSON = `{
  "name": "unary_scan",
  "states": ["q0", "q1", "q2", "qA", "qR"],
  "input_alphabet": ["1"],
  "tape_alphabet": ["1", "_"],
  "start": "q0",
  "accept": "qA",
  "reject": "qR",
  "transitions": ["q0,1,q0,1,R", "q0,_,qA,_,R"]
}`

func TestParse_AllFormatsAgree(t *testing.T) {
	want := testutils.UnaryScan()

	for ext, doc := range map[string]string{
		".csv":  testutils.UnaryScanCSV,
		".yaml": unaryYAML,
		".json": unaryJSON,
	} {
		t.Run(ext, func(t *testing.T) {
			def, err := file.Parse([]byte(doc), ext)
			require.NoError(t, err)
			assert.Equal(t, want.Name, def.Name)
			assert.Equal(t, want.States, def.States)
			assert.Equal(t, want.InputAlphabet, def.InputAlphabet)
			assert.Equal(t, want.TapeAlphabet, def.TapeAlphabet)
			assert.Equal(t, want.Start, def.Start)
			assert.Equal(t, want.Accept, def.Accept)
			assert.Equal(t, want.Reject, def.Reject)
			assert.Equal(t, want.Transitions, def.Transitions)
		})
	}
}

func TestParseCSV_Errors(t *testing.T) {
	t.Run("Short header", func(t *testing.T) {
		_, err := file.ParseCSV(strings.NewReader("name\nq0\n"))
		assert.ErrorIs(t, err, domain.ErrInvalidMachine)
	})

	t.Run("Bad row width", func(t *testing.T) {
		doc := testutils.UnaryScanCSV + "q0,1,q0\n"
		_, err := file.ParseCSV(strings.NewReader(doc))
		assert.ErrorIs(t, err, domain.ErrInvalidMachine)
		assert.Contains(t, err.Error(), "line 10")
	})
}

func TestParse_BadDirection(t *testing.T) {
	doc := strings.Replace(testutils.UnaryScanCSV, "q0,_,qA,_,R", "q0,_,qA,_,S", 1)
	_, err := file.Parse([]byte(doc), ".csv")
	assert.ErrorIs(t, err, domain.ErrInvalidMachine)
}

func TestParseYAML_UnknownField(t *testing.T) {
	_, err := file.ParseYAML([]byte("name: x\nstart: q0\nbogus: 1\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidMachine)
}

func TestLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scan.csv"), []byte(testutils.UnaryScanCSV), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nameless.yaml"),
		[]byte(strings.Replace(unaryYAML, "name: unary_scan\n", "", 1)), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	loader := file.New(dir)
	ctx := context.Background()

	tests.MachineLoaderContractTest(t, loader, map[string]domain.Definition{
		"scan.csv":      testutils.UnaryScan(),
		"nameless.yaml": testutils.UnaryScan(),
	})

	t.Run("Extension is optional", func(t *testing.T) {
		def, err := loader.Load(ctx, "scan")
		require.NoError(t, err)
		assert.Equal(t, "unary_scan", def.Name)
	})

	t.Run("Name falls back to file stem", func(t *testing.T) {
		def, err := loader.Load(ctx, "nameless.yaml")
		require.NoError(t, err)
		assert.Equal(t, "nameless", def.Name)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := loader.Load(ctx, "nope.csv")
		assert.ErrorIs(t, err, domain.ErrMachineNotFound)
		_, err = loader.Load(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrMachineNotFound)
	})

	t.Run("List skips unsupported files", func(t *testing.T) {
		names, err := loader.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"nameless.yaml", "scan.csv"}, names)
	})

	t.Run("Absolute paths bypass the root", func(t *testing.T) {
		path := testutils.WriteFile(t, "other.csv", testutils.UnaryScanCSV)
		def, err := file.New("/does/not/matter").Load(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "unary_scan", def.Name)
	})
}

func TestStem(t *testing.T) {
	assert.Equal(t, "machine", file.Stem("/a/b/machine.csv"))
	assert.Equal(t, "machine", file.Stem("machine"))
}
