package instance

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIDPrefersDyno(t *testing.T) {
	t.Setenv("DYNO", "web.1")
	t.Setenv("HOSTNAME", "container-7")
	require.Equal(t, "web.1", ID())

	t.Setenv("DYNO", "")
	require.Equal(t, "container-7", ID())

	t.Setenv("HOSTNAME", "")
	require.Equal(t, "local", ID())
}
