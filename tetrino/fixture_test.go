package tetrino_test

import (
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/plus3/tetrino/tetrino"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

type collapseCase struct {
	before, after string
	rows          int
}

func loadCollapseCases(t *testing.T) map[string]*collapseCase {
	t.Helper()

	archive, err := txtar.ParseFile(filepath.Join("testdata", "collapse.txtar"))
	require.NoError(t, err)

	cases := make(map[string]*collapseCase)
	for _, file := range archive.Files {
		name, part, ok := strings.Cut(file.Name, "/")
		require.True(t, ok, "fixture file %q", file.Name)

		c := cases[name]
		if c == nil {
			c = &collapseCase{}
			cases[name] = c
		}

		switch part {
		case "before":
			c.before = string(file.Data)
		case "after":
			c.after = string(file.Data)
		case "rows":
			c.rows, err = strconv.Atoi(strings.TrimSpace(string(file.Data)))
			require.NoError(t, err)
		default:
			t.Fatalf("unknown fixture part %q", file.Name)
		}
	}
	return cases
}

func TestCollapseFixtures(t *testing.T) {
	cases := loadCollapseCases(t)
	require.NotEmpty(t, cases)

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			g, err := tetrino.ParseLayout(c.before)
			require.NoError(t, err)
			rows := g.Rows()

			assert.Equal(t, c.rows, g.CollapseCompletedRows())
			assert.Equal(t, rows, g.Rows())
			assert.Equal(t, c.after, g.String())
		})
	}
}
