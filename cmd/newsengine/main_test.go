package main

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/gulcinmobile/newsengine/internal/news"
	"github.com/stretchr/testify/require"
)

func TestParseFetchArgs(t *testing.T) {
	opts, err := parseFetchArgs([]string{"-lang", "fr", "AI"}, io.Discard)
	require.NoError(t, err)
	require.Equal(t, fetchOptions{category: news.AI, lang: "fr", format: "json"}, opts)

	opts, err = parseFetchArgs([]string{"general", "-format", "text"}, io.Discard)
	require.NoError(t, err)
	require.Equal(t, fetchOptions{category: news.General, format: "text"}, opts)
}

func TestParseFetchArgsErrors(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"weather"},
		{"tech", "-lang", "uk"},
		{"tech", "-format", "xml"},
		{"-nope", "tech"},
		{"tech", "junk"},
		{"tech", "-lang", "fr", "extra"},
	} {
		_, err := parseFetchArgs(args, io.Discard)
		require.Error(t, err, args)
	}
}

func TestRunUsage(t *testing.T) {
	var out, errOut bytes.Buffer
	require.Equal(t, 2, run(context.Background(), nil, &out, &errOut))
	require.Contains(t, errOut.String(), "usage:")

	errOut.Reset()
	require.Equal(t, 2, run(context.Background(), []string{"publish"}, &out, &errOut))
	require.Contains(t, errOut.String(), `unknown command "publish"`)

	require.Equal(t, 0, run(context.Background(), []string{"help"}, &out, &errOut))
	require.Contains(t, out.String(), "newsengine serve")
}
