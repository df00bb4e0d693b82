package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshitjain2004/EnvoSafe/internal/core/domain"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	require.NotEmpty(t, c.Plants())

	neem, err := c.Find("Neem Tree")
	require.NoError(t, err)
	assert.Equal(t, domain.Tree, neem.Type)
	assert.Equal(t, domain.Large, neem.Size)
}

func TestFindUnknown(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	_, err = c.Find("Venus Flytrap")
	assert.ErrorIs(t, err, domain.ErrUnknownPlant)
}

func TestPlantsReturnsCopy(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	plants := c.Plants()
	plants[0].Name = "changed"

	assert.NotEqual(t, "changed", c.Plants()[0].Name)
}

func TestLoadRejectsInvalidEntries(t *testing.T) {
	cases := map[string]string{
		"empty":        "plants: []\n",
		"unknown type": "plants:\n  - {name: A, type: shrub, size: small}\n",
		"unknown size": "plants:\n  - {name: A, type: tree, size: huge}\n",
		"duplicate":    "plants:\n  - {name: A, type: tree, size: small}\n  - {name: A, type: other, size: small}\n",
		"unknown key":  "plants:\n  - {name: A, type: tree, size: small, price: 3}\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plants.yaml")
	doc := "plants:\n  - {name: Fern, type: other, size: medium, oxygen_output: 3.5, image: fern.png}\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, c.Plants(), 1)
	assert.Equal(t, 3.5, c.Plants()[0].OxygenOutput)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
