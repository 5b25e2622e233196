package i18n_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/horoscope/pkg/i18n"
)

func TestWithYAMLDir(t *testing.T) {
	t.Parallel()

	t.Run("loads language directories", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"en/signs.yaml": {Data: []byte("leo: Leo\nvirgo: Virgo\n")},
			"ro/signs.yml":  {Data: []byte("leo: leu\nvirgo: fecioară\n")},
			"ro/README.md":  {Data: []byte("ignored")},
		}

		c, err := i18n.New(i18n.WithYAMLDir(fsys))
		require.NoError(t, err)
		require.Equal(t, "fecioară", c.T("ro", "signs", "virgo"))
		require.Equal(t, "Leo", c.T("en", "signs", "leo"))
		require.Equal(t, []string{"en", "ro"}, c.Languages())
	})

	t.Run("file outside language directory", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{"signs.yaml": {Data: []byte("leo: Leo\n")}}
		_, err := i18n.New(i18n.WithYAMLDir(fsys))
		require.ErrorIs(t, err, i18n.ErrInvalidFile)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{"en/signs.yaml": {Data: []byte("leo: [Leo\n")}}
		_, err := i18n.New(i18n.WithYAMLDir(fsys))
		require.ErrorIs(t, err, i18n.ErrInvalidFile)
	})
}
