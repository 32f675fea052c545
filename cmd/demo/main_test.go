package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	var buf bytes.Buffer

	logger := zerolog.New(&buf)
	ctx := logger.WithContext(context.Background())

	require.NoError(t, run(ctx))

	out := buf.String()
	require.Contains(t, out, `"status":"SUCCESS"`)
	require.Contains(t, out, `"status":"FAILED_INSUFFICIENT_FUNDS"`)
	require.Contains(t, out, `"status":"FAILED_ACCOUNT_NOT_FOUND"`)
	require.Contains(t, out, `"balance":"800.00"`)
	require.Contains(t, out, `"balance":"700.00"`)
}
