package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRepository(t *testing.T) {
	repo, err := ParseRepository("facebook/react")
	require.NoError(t, err)
	assert.Equal(t, Repository{Owner: "facebook", Name: "react"}, repo)
	assert.Equal(t, "facebook/react", repo.String())
	assert.Equal(t, "/repos/facebook/react", repo.Path())
}

func TestParseRepository_Invalid(t *testing.T) {
	for _, in := range []string{"", "react", "/react", "facebook/", "a/b/c", "/", "../..", "./repo", "owner/.."} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseRepository(in)
			require.Error(t, err)

			var derr *Error
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, KindInvalidArgument, derr.Kind)
			assert.Equal(t, in, derr.Details["repository"])
			assert.Contains(t, derr.Suggestion, "owner/repo")
		})
	}
}
