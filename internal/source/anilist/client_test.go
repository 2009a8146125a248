// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package anilist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kessen/internal/platform/apperr"
)

func TestGraphQLFailure_EmptyListIsFine(t *testing.T) {
	assert.NoError(t, graphQLFailure(nil))
	assert.NoError(t, graphQLFailure([]graphQLError{}))
}

func TestGraphQLFailure_FoldsMessages(t *testing.T) {
	// GraphQL errors arrive with HTTP 200, so they must be surfaced here
	// rather than mistaken for an empty result.
	err := graphQLFailure([]graphQLError{
		{Message: "Not Found."},
		{Message: "Too Many Requests."},
	})

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Contains(t, appError.Cause.Error(), "Not Found.")
	assert.Contains(t, appError.Cause.Error(), "Too Many Requests.")
}
