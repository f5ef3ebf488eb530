package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docfox-labs/docfox-cli/internal/core/domain"
)

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns search results", func(t *testing.T) {
		mockSearch := &mockSearchService{
			results: []domain.ScoredDocument{
				{
					DocumentID:    "doc-1",
					Filename:      "invoice.pdf",
					Score:         140,
					MatchedChunks: []string{"S2"},
				},
			},
		}

		ports := &Ports{Search: mockSearch}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := SearchInput{Query: "test", Limit: 5}
		_, output, err := server.handleSearch(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Results, 1)
		assert.Equal(t, "doc-1", output.Results[0].DocumentID)
		assert.Equal(t, "invoice.pdf", output.Results[0].Filename)
		assert.Equal(t, 140, output.Results[0].Score)
		assert.Equal(t, []string{"S2"}, output.Results[0].MatchedChunks)
	})

	t.Run("zero limit falls back to default", func(t *testing.T) {
		mockSearch := &mockSearchService{}
		ports := &Ports{Search: mockSearch}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := SearchInput{Query: "test", Limit: 0}
		_, output, err := server.handleSearch(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		mockSearch := &mockSearchService{
			err: errors.New("search failed"),
		}

		ports := &Ports{Search: mockSearch}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := SearchInput{Query: "test"}
		_, _, err = server.handleSearch(ctx, nil, input)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}

func TestServer_handleGetContext(t *testing.T) {
	ctx := context.Background()

	t.Run("returns assembled context", func(t *testing.T) {
		mockSearch := &mockSearchService{
			contextText: "[From: invoice.pdf]\nTotal due is 42 euro.",
		}

		ports := &Ports{Search: mockSearch}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := ContextInput{Query: "total due"}
		_, output, err := server.handleGetContext(ctx, nil, input)

		require.NoError(t, err)
		assert.False(t, output.Empty)
		assert.Contains(t, output.Context, "invoice.pdf")
	})

	t.Run("flags empty context", func(t *testing.T) {
		mockSearch := &mockSearchService{contextText: ""}

		ports := &Ports{Search: mockSearch}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := ContextInput{Query: "anything"}
		_, output, err := server.handleGetContext(ctx, nil, input)

		require.NoError(t, err)
		assert.True(t, output.Empty)
		assert.Empty(t, output.Context)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		mockSearch := &mockSearchService{err: errors.New("store unavailable")}

		ports := &Ports{Search: mockSearch}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := ContextInput{Query: "anything"}
		_, _, err = server.handleGetContext(ctx, nil, input)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "store unavailable")
	})
}
