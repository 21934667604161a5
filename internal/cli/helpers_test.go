package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	paymentHideInput  = `{"cart":{"deliveryGroups":[{"selectedDeliveryOption":{"title":"Express"}}]},"paymentMethods":[{"id":"A","name":"COD"},{"id":"B","name":"PayPal"}],"paymentCustomization":{"metafield":{"value":"{\"method\":\"COD\",\"rate\":\"Express\"}"}}}`
	paymentHideOutput = `{"operations":[{"hide":{"paymentMethodId":"B"}}]}`

	deliveryBadConfigInput = `{"deliveryCustomization":{"metafield":{"value":"{\"rate\":\"Standard\"}"}}}`
)

// executeCommand runs the root command with args and stdin, returning
// stdout and the command error.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

// writeFile writes content to name under a temporary directory.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
